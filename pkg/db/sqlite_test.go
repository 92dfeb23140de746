package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteLowerFoldsUnicode(t *testing.T) {
	conn, err := NewTest()
	require.NoError(t, err)

	cases := map[string]string{
		"ÖDENBURG":      "ödenburg",
		"École Normale": "école normale",
		"Ñandú":         "ñandú",
		"plain":         "plain",
	}
	for in, want := range cases {
		var got string
		require.NoError(t, conn.Raw("SELECT LOWER(?)", in).Scan(&got).Error)
		assert.Equal(t, want, got, in)
	}

	var null sql.NullString
	require.NoError(t, conn.Raw("SELECT LOWER(NULL)").Row().Scan(&null))
	assert.False(t, null.Valid)
}

func TestUnicodeLower(t *testing.T) {
	assert.Equal(t, "öl", unicodeLower("ÖL"))
	assert.Equal(t, []byte("öl"), unicodeLower([]byte("ÖL")))
	assert.Nil(t, unicodeLower([]byte(nil)))
	assert.Equal(t, int64(7), unicodeLower(int64(7)))
}
