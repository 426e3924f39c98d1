// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package texture

// PixelEdit overwrites one texel.
type PixelEdit struct {
	Offset int
	Value  byte
}

// Patch is a named set of texel edits applied to one texture identity.
type Patch struct {
	Name  string
	Edits []PixelEdit
}

// Well-known texture identities.
const (
	// HashFontGlyphFive is the small font page whose "5" glyph is missing
	// a few texels.
	HashFontGlyphFive uint64 = 0xbeed610acac387d3

	// HashTitleScreen is the title screen background.
	HashTitleScreen uint64 = 0x84ab94c374c42d9a
)

// PatchTable maps texture identities to texel patches. The zero value is
// an empty table.
type PatchTable struct {
	patches map[uint64]Patch
}

// NewPatchTable returns an empty table.
func NewPatchTable() *PatchTable {
	return &PatchTable{patches: make(map[uint64]Patch)}
}

// DefaultPatches returns the table of cosmetic fixes for known game textures.
func DefaultPatches() *PatchTable {
	t := NewPatchTable()
	const pitch = 16
	t.Register(HashFontGlyphFive, Patch{
		Name: "font glyph 5",
		Edits: []PixelEdit{
			{Offset: 1 + 10*pitch, Value: 181},
			{Offset: 2 + 10*pitch, Value: 181},
			{Offset: 1 + 11*pitch, Value: 29},
		},
	})
	return t
}

// Register adds or replaces the patch for hash.
func (t *PatchTable) Register(hash uint64, p Patch) {
	if t.patches == nil {
		t.patches = make(map[uint64]Patch)
	}
	t.patches[hash] = p
}

// Lookup returns the patch for hash.
func (t *PatchTable) Lookup(hash uint64) (Patch, bool) {
	p, ok := t.patches[hash]
	return p, ok
}

// Apply edits texels in place if a patch is registered for hash. Edits
// outside texels are skipped. It returns the name of the applied patch.
func (t *PatchTable) Apply(hash uint64, texels []byte) (string, bool) {
	p, ok := t.patches[hash]
	if !ok {
		return "", false
	}
	for _, e := range p.Edits {
		if e.Offset >= 0 && e.Offset < len(texels) {
			texels[e.Offset] = e.Value
		}
	}
	return p.Name, true
}

// Len returns the number of registered patches.
func (t *PatchTable) Len() int { return len(t.patches) }
