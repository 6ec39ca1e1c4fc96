package tui

type View int

const (
	ViewFeed View = iota
	ViewSearch
	ViewRelated
)
