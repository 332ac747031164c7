package queries_test

import (
	"testing"

	"github.com/u44592/hni/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOpenOrdersQuery_Valid(t *testing.T) {
	query := queries.NewGetOpenOrdersQuery()
	err := query.Validate()
	require.NoError(t, err)
}

func TestGetOpenOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetOpenOrdersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetOpenOrdersQueryIsNotConstructed)
}
