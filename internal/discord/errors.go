package discord

import "errors"

// ErrEmptyToken indicates that no token was provided and no session was injected via WithSession.
var ErrEmptyToken = errors.New("token must be set or a session must be provided via WithSession")

// ErrNoAuthor indicates that the given message or interaction has no author.
var ErrNoAuthor = errors.New("message has no author")

// ErrNotApplicationCommand indicates that the given interaction is not an application command invocation.
var ErrNotApplicationCommand = errors.New("interaction is not an application command")

// ErrEmptyAppID indicates that application commands cannot be registered without an application ID.
var ErrEmptyAppID = errors.New("application ID must be set to register commands")
