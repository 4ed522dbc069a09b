package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testQuery struct {
	invalid bool
}

func (q testQuery) Validate() error {
	if q.invalid {
		return errors.New("invalid")
	}
	return nil
}

func TestQueryBusDispatch(t *testing.T) {
	queryBus := NewQueryBus()

	require.NoError(t, queryBus.Register(testQuery{}, QueryHandlerFunc(
		func(ctx context.Context, query Query) (interface{}, error) {
			return 42, nil
		},
	)))

	result, err := queryBus.Ask(context.Background(), testQuery{})
	require.NoError(t, err)
	assert.Equal(t, 42, result)
}

func TestQueryBusValidation(t *testing.T) {
	queryBus := NewQueryBus()
	require.NoError(t, queryBus.Register(testQuery{}, QueryHandlerFunc(
		func(ctx context.Context, query Query) (interface{}, error) {
			return nil, nil
		},
	)))

	_, err := queryBus.Ask(context.Background(), testQuery{invalid: true})
	assert.Error(t, err)
}

func TestQueryBusUnregistered(t *testing.T) {
	queryBus := NewQueryBus()
	_, err := queryBus.Ask(context.Background(), testQuery{})
	assert.Error(t, err)
}
