package integration

import (
	"context"
	"fmt"
	"log"
	"testing"
	"time"

	"github.com/iyhunko/product-catalog/internal/config"
	"github.com/iyhunko/product-catalog/internal/repository/mongodb"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"go.mongodb.org/mongo-driver/mongo"
)

const testDBName = "catalog_test"

// TestDB holds the test database connection and the container behind it
type TestDB struct {
	DB       *mongo.Database
	Pool     *dockertest.Pool
	Resource *dockertest.Resource
}

// SetupTestDB starts a MongoDB container using dockertest and connects to it.
// The test is skipped in -short mode.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	// Create dockertest pool
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("Could not connect to docker: %s", err)
	}

	// Set max wait time for Docker operations
	pool.MaxWait = 120 * time.Second

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "7",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("Could not start resource: %s", err)
	}

	// Set container to expire after 2 minutes to avoid orphaned containers
	if err := resource.Expire(120); err != nil {
		t.Fatalf("Could not set expiration: %s", err)
	}

	dbConf := config.DB{
		URI:  fmt.Sprintf("mongodb://%s", resource.GetHostPort("27017/tcp")),
		Name: testDBName,
	}

	log.Println("Connecting to database on url: ", dbConf.URI)

	// Wait for database to be ready
	var db *mongo.Database
	if err = pool.Retry(func() error {
		var err error
		db, err = mongodb.StartDB(context.Background(), dbConf)
		return err
	}); err != nil {
		t.Fatalf("Could not connect to docker: %s", err)
	}

	return &TestDB{
		DB:       db,
		Pool:     pool,
		Resource: resource,
	}
}

// Cleanup disconnects from the database and purges the Docker container
func (tdb *TestDB) Cleanup(t *testing.T) {
	t.Helper()

	if tdb.DB != nil {
		if err := mongodb.StopDB(context.Background(), tdb.DB); err != nil {
			t.Errorf("Could not close database: %s", err)
		}
	}

	if tdb.Pool != nil && tdb.Resource != nil {
		if err := tdb.Pool.Purge(tdb.Resource); err != nil {
			t.Errorf("Could not purge resource: %s", err)
		}
	}
}

// DropProducts empties the products collection
func (tdb *TestDB) DropProducts(t *testing.T) {
	t.Helper()

	if err := tdb.DB.Collection(mongodb.ProductsCollection).Drop(context.Background()); err != nil {
		t.Fatalf("Could not drop collection %s: %s", mongodb.ProductsCollection, err)
	}
}
