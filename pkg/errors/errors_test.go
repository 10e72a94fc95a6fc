// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Provgraph Contributors

package errors_test

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pgerr "github.com/provgraph-dev/provgraph/pkg/errors"
)

func TestCodeOf(t *testing.T) {
	err := pgerr.New(pgerr.CodeStoreVertexNotFound, "no such vertex")
	assert.Equal(t, pgerr.CodeStoreVertexNotFound, pgerr.CodeOf(err))

	assert.Equal(t, pgerr.Code(""), pgerr.CodeOf(nil))
	assert.Equal(t, pgerr.Code(""), pgerr.CodeOf(stderrors.New("plain")))
}

func TestWrapNilReturnsNil(t *testing.T) {
	require.NoError(t, pgerr.Wrap(nil, pgerr.CodeStoreDatabaseFailure, "ignored"))
	require.NoError(t, pgerr.Wrapf(nil, pgerr.CodeStoreDatabaseFailure, "ignored %d", 1))
}

func TestWrapPreservesChain(t *testing.T) {
	base := stderrors.New("disk full")
	err := pgerr.Wrap(base, pgerr.CodeStoreDatabaseFailure, "inserting vertex")

	require.Error(t, err)
	assert.ErrorIs(t, err, base)
	assert.Equal(t, pgerr.CodeStoreDatabaseFailure, pgerr.CodeOf(err))
}

func TestClassification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		notFound   bool
		invalid    bool
		httpStatus int
	}{
		{
			name:       "vertex not found",
			err:        pgerr.New(pgerr.CodeStoreVertexNotFound, "missing"),
			notFound:   true,
			httpStatus: http.StatusNotFound,
		},
		{
			name:       "invalid query input",
			err:        pgerr.New(pgerr.CodeStoreQueryInvalid, "bad expression"),
			invalid:    true,
			httpStatus: http.StatusBadRequest,
		},
		{
			name:       "database failure",
			err:        pgerr.New(pgerr.CodeStoreDatabaseFailure, "boom"),
			httpStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.notFound, pgerr.IsNotFound(tt.err))
			assert.Equal(t, tt.invalid, pgerr.IsInvalidInput(tt.err))
			assert.Equal(t, tt.httpStatus, pgerr.HTTPStatus(tt.err))
		})
	}
}

func TestFields(t *testing.T) {
	err := pgerr.New(pgerr.CodeStoreVertexNotFound, "missing",
		pgerr.FieldVertexID(42), pgerr.FieldTable("vertex"))

	fields := pgerr.FieldsOf(err)
	require.NotNil(t, fields)
	assert.Equal(t, int64(42), fields["vertex_id"])
	assert.Equal(t, "vertex", fields["table"])
}
