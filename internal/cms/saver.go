package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"

	"github.com/debemdeboas/oremos-juntos/internal/content"
)

var ErrNoProcedure = errors.New("save procedure not configured")

// Procedure is the privileged remote write that re-checks the password.
type Procedure interface {
	SaveContent(ctx context.Context, password string, doc content.Document) error
}

// ContentWriter is the direct write guarded by the store's access policy.
type ContentWriter interface {
	Upsert(ctx context.Context, content []byte) error
}

type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Toast is the single notification shown to the operator after a save.
type Toast struct {
	Kind    ToastKind `json:"type"`
	Message string    `json:"message"`
}

const (
	MsgSavedPrimary  = "Conteúdo atualizado com sucesso. Tudo pronto para inspirar!"
	MsgSavedFallback = "Conteúdo atualizado com sucesso."
	MsgSaveFailed    = "Não foi possível salvar as alterações. Verifique sua conexão."
	MsgSaveOffline   = "Erro de conexão ao salvar. Verifique sua internet."
)

// Path tells which write settled the save.
type Path string

const (
	PathPrimary  Path = "primary"
	PathFallback Path = "fallback"
	PathNone     Path = "none"
)

// Outcome is the settled result of one save.
type Outcome struct {
	Path  Path
	Toast Toast
	// Version is the Active version published when the save was invoked.
	Version uint64
	// PrimaryErr is why the privileged procedure did not settle the save.
	PrimaryErr error
	// Err is set when both writes failed.
	Err error
}

func (o Outcome) OK() bool {
	return o.Err == nil
}

type Saver struct {
	active   *Active
	primary  Procedure
	fallback ContentWriter
}

// NewSaver wires the pipeline. A nil primary sends every save straight to the
// fallback write.
func NewSaver(active *Active, primary Procedure, fallback ContentWriter) *Saver {
	return &Saver{active: active, primary: primary, fallback: fallback}
}

// Save publishes doc at once, then persists it with the privileged procedure
// and, if that fails for any reason, with exactly one direct upsert.
//
// The published document is not rolled back when both writes fail. Saves are
// not serialized: the last invocation wins Active, the last write to settle
// wins the store.
func (s *Saver) Save(ctx context.Context, password string, doc content.Document) Outcome {
	out := Outcome{Version: s.active.Replace(doc)}

	log := cmsLogger.With().Uint64("version", out.Version).Logger()

	primaryErr := ErrNoProcedure
	if s.primary != nil {
		primaryErr = s.primary.SaveContent(ctx, password, doc)
	}
	if primaryErr == nil {
		log.Info().Msg("Content saved through the save procedure")
		out.Path = PathPrimary
		out.Toast = Toast{Kind: ToastSuccess, Message: MsgSavedPrimary}
		return out
	}
	out.PrimaryErr = primaryErr
	log.Warn().Err(primaryErr).Msg("Save procedure failed, trying direct upsert")

	err := s.upsert(ctx, doc)
	if err == nil {
		log.Info().Msg("Content saved through direct upsert")
		out.Path = PathFallback
		out.Toast = Toast{Kind: ToastSuccess, Message: MsgSavedFallback}
		return out
	}

	log.Error().Err(err).Msg("Error saving content")
	out.Path = PathNone
	out.Err = errors.Join(primaryErr, err)
	out.Toast = Toast{Kind: ToastError, Message: failureMessage(err)}
	return out
}

func (s *Saver) upsert(ctx context.Context, doc content.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding content: %w", err)
	}
	return s.fallback.Upsert(ctx, data)
}

func failureMessage(err error) string {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || errors.As(err, &netErr) {
		return MsgSaveOffline
	}
	return MsgSaveFailed
}
