package controllers

import (
	"net/http"

	game_constants "StoryPals/constants/game"
	models "StoryPals/models/postgres"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type friendActionRequest struct {
	Action          string `json:"action"`
	ChildID         string `json:"child_id"`
	FriendChildID   string `json:"friend_child_id"`
	FriendRequestID string `json:"friend_request_id"`
	SearchQuery     string `json:"search_query"`
}

// @Summary Friends management dispatch
// @Description Routes a friends action (send_friend_request, accept_friend_request, decline_friend_request, get_friend_requests, search_children, list_all_children)
// @Tags friends
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /auth/friends [post]
// @Security ApiKeyAuth
func ManageFriends(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req friendActionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
			return
		}

		switch req.Action {
		case "send_friend_request":
			if req.ChildID == "" || req.FriendChildID == "" {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "child_id and friend_child_id are required"})
				return
			}
			// An edge in either direction blocks a duplicate request
			var existing models.Friend
			err := db.Where(
				"(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
				req.ChildID, req.FriendChildID, req.FriendChildID, req.ChildID,
			).First(&existing).Error
			if err == nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Friend request already exists"})
				return
			}

			friendRequest := models.Friend{
				RequesterID: req.ChildID,
				AddresseeID: req.FriendChildID,
				Status:      game_constants.RequestStatusPending,
			}
			if err := db.Create(&friendRequest).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Error sending friend request"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "data": friendRequest})

		case "accept_friend_request":
			if req.FriendRequestID == "" {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "friend_request_id is required"})
				return
			}
			if err := db.Model(&models.Friend{}).
				Where("id = ?", req.FriendRequestID).
				Update("status", "accepted").Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Error accepting friend request"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true})

		case "decline_friend_request":
			if req.FriendRequestID == "" {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "friend_request_id is required"})
				return
			}
			// Declining removes the edge entirely so a new request can follow
			if err := db.Delete(&models.Friend{}, "id = ?", req.FriendRequestID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Error declining friend request"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true})

		case "get_friend_requests":
			if req.ChildID == "" {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "child_id is required"})
				return
			}
			var requests []models.Friend
			if err := db.Preload("Requester").
				Where("addressee_id = ? AND status = ?", req.ChildID, game_constants.RequestStatusPending).
				Find(&requests).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Error retrieving friend requests"})
				return
			}
			requestsInfo := make([]gin.H, 0, len(requests))
			for _, request := range requests {
				requestsInfo = append(requestsInfo, gin.H{
					"id":         request.ID,
					"status":     request.Status,
					"created_at": request.CreatedAt,
					"requester": gin.H{
						"id":     request.Requester.ID,
						"name":   request.Requester.Name,
						"avatar": request.Requester.Avatar,
					},
				})
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "data": requestsInfo})

		case "search_children":
			if req.ChildID == "" {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "child_id is required"})
				return
			}
			// Exclude children already linked by a pending or accepted edge
			var edges []models.Friend
			if err := db.Where("requester_id = ? OR addressee_id = ?", req.ChildID, req.ChildID).
				Where("status IN ?", []string{game_constants.RequestStatusPending, "accepted"}).
				Find(&edges).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Error searching children"})
				return
			}
			friendIDs := make([]string, 0, len(edges))
			for _, edge := range edges {
				if edge.RequesterID == req.ChildID {
					friendIDs = append(friendIDs, edge.AddresseeID)
				} else {
					friendIDs = append(friendIDs, edge.RequesterID)
				}
			}

			query := db.Model(&models.ChildProfile{}).
				Select("id", "name", "avatar").
				Where("id <> ?", req.ChildID).
				Where("name LIKE ?", "%"+req.SearchQuery+"%")
			if len(friendIDs) > 0 {
				query = query.Where("id NOT IN ?", friendIDs)
			}

			var children []models.ChildProfile
			if err := query.Limit(10).Find(&children).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Error searching children"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "data": children})

		case "list_all_children":
			var children []models.ChildProfile
			query := db.Model(&models.ChildProfile{}).
				Select("id", "name", "avatar", "updated_at").
				Order("updated_at DESC")
			if req.ChildID != "" {
				query = query.Where("id <> ?", req.ChildID)
			}
			if err := query.Find(&children).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Error listing children"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "data": children})

		default:
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid action"})
		}
	}
}
