package engine

import (
	"context"

	"github.com/tatianab/element-mixer/internal/models"
)

// Oracle invents the outcome of a combination. Implementations may fail at
// the transport or parsing level; the engine turns that into an error outcome.
type Oracle interface {
	Combine(ctx context.Context, req models.OracleRequest) (*models.OracleResponse, error)
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(ctx context.Context, req models.OracleRequest) (*models.OracleResponse, error)

func (f OracleFunc) Combine(ctx context.Context, req models.OracleRequest) (*models.OracleResponse, error) {
	return f(ctx, req)
}
