package controllers

import (
	"net/http"

	models "StoryPals/models/postgres"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type profileActionRequest struct {
	Action      string `json:"action"`
	ProfileData struct {
		ParentID string `json:"parent_id"`
		ChildID  string `json:"child_id"`
		Name     string `json:"name"`
		AgeGroup string `json:"age_group"`
		Avatar   string `json:"avatar"`
	} `json:"profile_data"`
}

// @Summary Children profile management dispatch
// @Description Routes a profile action (create_child, update_child, delete_child, get_children)
// @Tags profiles
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /auth/profiles [post]
// @Security ApiKeyAuth
func ManageProfiles(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req profileActionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
			return
		}

		switch req.Action {
		case "create_child":
			if req.ProfileData.ParentID == "" || req.ProfileData.Name == "" {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "parent_id and name are required"})
				return
			}
			child := models.ChildProfile{
				ParentEmail: req.ProfileData.ParentID,
				Name:        req.ProfileData.Name,
				AgeGroup:    req.ProfileData.AgeGroup,
				Avatar:      req.ProfileData.Avatar,
			}
			if err := db.Create(&child).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Error creating child profile"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "data": child})

		case "update_child":
			if req.ProfileData.ChildID == "" {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "child_id is required"})
				return
			}
			updates := map[string]interface{}{}
			if req.ProfileData.Name != "" {
				updates["name"] = req.ProfileData.Name
			}
			if req.ProfileData.AgeGroup != "" {
				updates["age_group"] = req.ProfileData.AgeGroup
			}
			if req.ProfileData.Avatar != "" {
				updates["avatar"] = req.ProfileData.Avatar
			}
			if err := db.Model(&models.ChildProfile{}).
				Where("id = ?", req.ProfileData.ChildID).
				Updates(updates).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Error updating child profile"})
				return
			}
			var child models.ChildProfile
			if err := db.Where("id = ?", req.ProfileData.ChildID).First(&child).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Child profile not found"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "data": child})

		case "delete_child":
			if req.ProfileData.ChildID == "" {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "child_id is required"})
				return
			}
			if err := db.Delete(&models.ChildProfile{}, "id = ?", req.ProfileData.ChildID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Error deleting child profile"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true})

		case "get_children":
			if req.ProfileData.ParentID == "" {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "parent_id is required"})
				return
			}
			var children []models.ChildProfile
			if err := db.Where("parent_email = ?", req.ProfileData.ParentID).
				Find(&children).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Error retrieving children"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "data": children})

		default:
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid action"})
		}
	}
}
