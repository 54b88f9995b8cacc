package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-backoffice/pkg/config"
	"github.com/jhoicas/pos-backoffice/pkg/logger"
)

func TestNewPool_DSNInvalido(t *testing.T) {
	_, err := NewPool(context.Background(), config.DBConfig{DatabaseURL: "postgres://u:p@host:no-es-puerto/db"}, logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse DSN")
}
