package session

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Persister receives the serialized session after every mutation. Failures
// are logged and reported; they never undo the mutation.
type Persister interface {
	Save(ctx context.Context, data []byte) error
}

// Loader provides the serialized session once at startup.
type Loader interface {
	Load(ctx context.Context) ([]byte, error)
}

// Level is the severity of a notice
type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Notice is a human-readable message for the user
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Notifier delivers notices to the user.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// LogNotifier writes notices to the global logger.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, n Notice) {
	level := zerolog.InfoLevel
	switch n.Level {
	case LevelWarn:
		level = zerolog.WarnLevel
	case LevelError:
		level = zerolog.ErrorLevel
	}
	log.WithLevel(level).Str("notice", n.Message).Msg("user notice")
}

// PromptKind identifies which destructive operation asks for confirmation
type PromptKind string

const (
	PromptDeletePlayer    PromptKind = "delete_player"
	PromptClearAll        PromptKind = "clear_all"
	PromptOverwriteList   PromptKind = "overwrite_list"
	PromptReplaceOnImport PromptKind = "replace_on_import"
	PromptLoadList        PromptKind = "load_list"
)

// Prompt describes a decision the user has to make
type Prompt struct {
	Kind    PromptKind `json:"kind"`
	Subject string     `json:"subject"`
	Message string     `json:"message"`
}

// Confirmer answers prompts. Data is only destroyed on a true answer.
type Confirmer interface {
	Confirm(ctx context.Context, p Prompt) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, p Prompt) bool

func (f ConfirmFunc) Confirm(ctx context.Context, p Prompt) bool {
	return f(ctx, p)
}

var (
	// AlwaysConfirm answers yes to every prompt.
	AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, Prompt) bool { return true })
	// NeverConfirm answers no to every prompt.
	NeverConfirm Confirmer = ConfirmFunc(func(context.Context, Prompt) bool { return false })
)

func confirm(ctx context.Context, c Confirmer, p Prompt) bool {
	if c == nil {
		return false
	}
	return c.Confirm(ctx, p)
}

type discardPersister struct{}

func (discardPersister) Save(context.Context, []byte) error { return nil }
