package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"StoryPals/controllers"
	"StoryPals/middleware"
	"StoryPals/models/postgres"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupProfilesRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	authorized := router.Group("/auth")
	authorized.Use(middleware.AuthRequired)
	authorized.POST("/profiles", controllers.ManageProfiles(db))
	return router
}

func postProfiles(router *gin.Engine, body gin.H) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/auth/profiles", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer test-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateUpdateDeleteChild(t *testing.T) {
	db := setupTestDB(t)
	router := setupProfilesRouter(db)

	w := postProfiles(router, gin.H{
		"action": "create_child",
		"profile_data": gin.H{
			"parent_id": "parent@example.com",
			"name":      "Mia",
			"age_group": "6-8",
			"avatar":    "🦊",
		},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	childID := body["data"].(map[string]interface{})["id"].(string)
	assert.NotEmpty(t, childID)

	w = postProfiles(router, gin.H{
		"action": "update_child",
		"profile_data": gin.H{
			"child_id": childID,
			"avatar":   "🐯",
		},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "🐯", data["avatar"])
	assert.Equal(t, "Mia", data["name"])

	w = postProfiles(router, gin.H{
		"action":       "delete_child",
		"profile_data": gin.H{"child_id": childID},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	assert.NoError(t, db.Model(&postgres.ChildProfile{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestGetChildrenScopedToParent(t *testing.T) {
	db := setupTestDB(t)
	router := setupProfilesRouter(db)

	for _, name := range []string{"Mia", "Leo"} {
		w := postProfiles(router, gin.H{
			"action": "create_child",
			"profile_data": gin.H{
				"parent_id": "parent@example.com",
				"name":      name,
			},
		})
		assert.Equal(t, http.StatusOK, w.Code)
	}
	w := postProfiles(router, gin.H{
		"action": "create_child",
		"profile_data": gin.H{
			"parent_id": "other@example.com",
			"name":      "Ana",
		},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = postProfiles(router, gin.H{
		"action":       "get_children",
		"profile_data": gin.H{"parent_id": "parent@example.com"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	children := decodeBody(t, w)["data"].([]interface{})
	assert.Len(t, children, 2)
}

func TestCreateChildMissingFields(t *testing.T) {
	router := setupProfilesRouter(setupTestDB(t))

	w := postProfiles(router, gin.H{
		"action":       "create_child",
		"profile_data": gin.H{"name": "Mia"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "parent_id and name are required", decodeBody(t, w)["error"])
}
