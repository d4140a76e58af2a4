package services_test

import (
	"context"
	"io"
	"testing"

	"loadlab/internal/models"
	"loadlab/internal/repositories"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// seededStore returns a memory store holding a small fixed catalog.
func seededStore(t *testing.T) *repositories.Store {
	t.Helper()
	store := repositories.NewMemoryStore()
	catalog := []models.Product{
		{ID: "p1", Name: "Laptop", Price: 100, Category: models.CategoryElectronics, Stock: 5, Rating: 4.5, Description: "Fast machine"},
		{ID: "p2", Name: "Shirt", Price: 20, Category: models.CategoryClothing, Stock: 10, Rating: 3.9, Description: "Cotton tee"},
		{ID: "p3", Name: "Novel", Price: 12.5, Category: models.CategoryBooks, Stock: 1, Rating: 4.9, Description: "A long story"},
		{ID: "p4", Name: "Phone", Price: 80, Category: models.CategoryElectronics, Stock: 3, Rating: 4.5, Description: "Smart device"},
		{ID: "p5", Name: "Lamp", Price: 0.1, Category: models.CategoryHome, Stock: 100, Rating: 3.2, Description: "Bright light"},
	}
	for i := range catalog {
		require.NoError(t, store.Products.Create(context.Background(), &catalog[i]))
	}
	return store
}
