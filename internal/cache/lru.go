// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package cache

// lruNode is one resident key and the slot it occupies.
type lruNode[K comparable] struct {
	key  K
	slot int
	prev *lruNode[K]
	next *lruNode[K]
}

// lruList orders resident nodes by recency. The head is the most recently
// used, the tail the least. Not safe for concurrent use.
type lruList[K comparable] struct {
	head *lruNode[K]
	tail *lruNode[K]
	len  int
}

// Len returns the number of linked nodes.
func (l *lruList[K]) Len() int {
	return l.len
}

// PushFront links node as the most recently used.
func (l *lruList[K]) PushFront(node *lruNode[K]) {
	node.prev = nil
	node.next = l.head
	if l.head != nil {
		l.head.prev = node
	} else {
		l.tail = node
	}
	l.head = node
	l.len++
}

// MoveToFront marks node as the most recently used.
func (l *lruList[K]) MoveToFront(node *lruNode[K]) {
	if node == l.head {
		return
	}
	l.unlink(node)
	l.PushFront(node)
}

// Back returns the least recently used node, or nil if the list is empty.
func (l *lruList[K]) Back() *lruNode[K] {
	return l.tail
}

// Remove unlinks node.
func (l *lruList[K]) Remove(node *lruNode[K]) {
	l.unlink(node)
}

// Clear drops every node.
func (l *lruList[K]) Clear() {
	l.head = nil
	l.tail = nil
	l.len = 0
}

func (l *lruList[K]) unlink(node *lruNode[K]) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}
	node.prev = nil
	node.next = nil
	l.len--
}
