package repository_test

import (
	"testing"

	"github.com/qs3c/castquest_server/internal/repository"
	"github.com/qs3c/castquest_server/internal/repository/repotest"
	"github.com/qs3c/castquest_server/internal/testutil"
)

func TestGormRepositories(t *testing.T) {
	repotest.Run(t, func(t *testing.T) *repository.Repositories {
		db := testutil.SetupTestDB(t)
		t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
		return repository.NewRepositories(db)
	})
}
