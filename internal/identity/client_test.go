package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "vorsorge/pkg/domain"
	"vorsorge/pkg/platform/sentinel"
)

func TestDeleteIdentity(t *testing.T) {
	ctx := context.Background()
	userID := id.UserID(uuid.New())

	t.Run("deletes with bearer auth", func(t *testing.T) {
		var gotMethod, gotPath, gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "test-api-key")
		err := client.DeleteIdentity(ctx, userID)
		require.NoError(t, err)

		assert.Equal(t, http.MethodDelete, gotMethod)
		assert.Equal(t, "/admin/users/"+userID.String(), gotPath)
		assert.Equal(t, "Bearer test-api-key", gotAuth)
	})

	t.Run("maps 404 to not found", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		err := NewClient(srv.URL, "key").DeleteIdentity(ctx, userID)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("fails on server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		err := NewClient(srv.URL, "key").DeleteIdentity(ctx, userID)
		assert.ErrorContains(t, err, "status 500")
	})

	t.Run("fails when unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		err := NewClient(srv.URL, "key").DeleteIdentity(ctx, userID)
		assert.Error(t, err)
	})
}
