package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// MsgKind enumerates the view-level message types. Controller completions are separate
// [tracker] messages routed straight to the controller.
type MsgKind int

// Msg represents view-level messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgNoticeExpired MsgKind = iota
)

// noticeExpiredMsg is the constructor for [MsgNoticeExpired]
func noticeExpiredMsg(seq int) Msg {
	return Msg{kind: MsgNoticeExpired, data: seq}
}
