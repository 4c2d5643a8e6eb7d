package tui

type state int

const (
	loadingState state = iota
	errorState
	feedState
	commentsState
)
