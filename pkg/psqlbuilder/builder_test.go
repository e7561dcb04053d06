package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id").
		From("bookings").
		Where(squirrel.Eq{"spot_id": "s-1"}).
		Where(squirrel.Eq{"status": []string{"active", "completed"}}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM bookings WHERE spot_id = $1 AND status IN ($2,$3)", query)
	assert.Equal(t, []interface{}{"s-1", "active", "completed"}, args)
}
