package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"pvbatt-sim/internal/api/models"

	"github.com/gin-gonic/gin"
)

// ListDatasets handles GET /api/v1/datasets
func ListDatasets(c *gin.Context) {
	dir := os.Getenv("DATASET_DIR")
	if dir == "" {
		dir = "./examples/datasets"
	}

	datasets := []models.DatasetInfo{}
	entries, err := os.ReadDir(dir)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"datasets": datasets})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		datasets = append(datasets, models.DatasetInfo{
			ID:   id,
			Name: id,
			File: filepath.Join(dir, entry.Name()),
		})
	}

	c.JSON(http.StatusOK, gin.H{"datasets": datasets})
}
