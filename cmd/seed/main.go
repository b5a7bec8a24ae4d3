// Command seed resets the authorization registry to the default accounts.
package main

import (
	"context"
	"errors"
	"flag"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/taskflow-dev/taskflow/db"
	"github.com/taskflow-dev/taskflow/internal/config"
	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/store"
)

var defaultAssignments = []models.RoleAssignment{
	{Email: "admin@test.com", Role: models.RoleAdmin},
	{Email: "tracker@test.com", Role: models.RoleTaskTracker},
	{Email: "readonly@test.com", Role: models.RoleReadOnly},
}

func main() {
	keep := flag.Bool("keep", false, "keep existing entries and only upsert the defaults")
	flag.Parse()

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st, closeStore, err := db.OpenStore(ctx, cfg)

	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer closeStore()

	if err := seed(ctx, st, defaultAssignments, *keep); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.WithField("entries", len(defaultAssignments)).Info("Role assignments seeded")
}

// seed writes entries to the registry. Unless keep is set, every existing
// entry is removed first.
func seed(ctx context.Context, st store.Store, entries []models.RoleAssignment, keep bool) error {
	return st.Atomically(ctx, func(tx store.Store) error {
		if !keep {
			removed, err := tx.DeleteAllRoleAssignments(ctx)
			if err != nil {
				return err
			}
			log.WithField("removed", removed).Debug("registry cleared")
		}

		for _, entry := range entries {
			email := models.NormalizeEmail(entry.Email)

			_, err := tx.UpdateRoleAssignment(ctx, email, email, entry.Role)
			if err == nil {
				continue
			}
			if !errors.Is(err, store.ErrNotFound) {
				return err
			}

			if err := tx.CreateRoleAssignment(ctx, &models.RoleAssignment{Email: email, Role: entry.Role}); err != nil {
				return err
			}
		}

		return nil
	})
}
