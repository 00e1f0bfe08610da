// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setrini/inmobiliaria/pkg/query"
)

/*
TestStringSlice splits and trims comma-separated values.
*/
func TestStringSlice(t *testing.T) {
	assert.Nil(t, query.StringSlice(""))
	assert.Equal(t, []string{"CASA", "PH"}, query.StringSlice(" CASA, ,PH ,"))
}

/*
TestOptionalNumbers distinguishes absent, valid and malformed values.
*/
func TestOptionalNumbers(t *testing.T) {
	value, ok := query.OptionalFloat("")
	assert.True(t, ok)
	assert.Nil(t, value)

	value, ok = query.OptionalFloat("125000.50")
	require.True(t, ok)
	assert.Equal(t, 125000.50, *value)

	_, ok = query.OptionalFloat("mucho")
	assert.False(t, ok)

	count, ok := query.OptionalInt("3")
	require.True(t, ok)
	assert.Equal(t, 3, *count)

	_, ok = query.OptionalInt("3.5")
	assert.False(t, ok)

	flag, ok := query.OptionalBool("true")
	require.True(t, ok)
	assert.True(t, *flag)

	_, ok = query.OptionalBool("yes")
	assert.False(t, ok)
}

/*
TestIntOr falls back on blank and malformed input.
*/
func TestIntOr(t *testing.T) {
	assert.Equal(t, 5, query.IntOr("", 5))
	assert.Equal(t, 5, query.IntOr("cinco", 5))
	assert.Equal(t, 12, query.IntOr(" 12 ", 5))
	assert.Equal(t, -1, query.IntOr("-1", 5))
}
