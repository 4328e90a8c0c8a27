package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	redis_models "StoryPals/models/redis"
	redis_utils "StoryPals/services/redis/utils"

	"github.com/redis/go-redis/v9"
)

// RedisClient handles Redis operations
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(Addr string, DB int) *RedisClient {
	var client *redis.Client
	if Addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(Addr)
		if err != nil {
			panic("Error parsing Redis URL")
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: Addr,
			DB:   DB,
		})
	}
	return &RedisClient{
		client: client,
		ctx:    context.Background(),
	}
}

// PublishJoinRequest pushes a join_requests insert onto the invitation feed
// and into the target child's inbox list. The socket gateway relays live
// events from the feed; the inbox covers children who were offline when the
// event fired and is drained on their next connect.
func (rc *RedisClient) PublishJoinRequest(event *redis_models.InvitationEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("error marshaling invitation event: %v", err)
	}

	inboxKey := redis_utils.FormatInvitationInboxKey(event.ChildID)
	if err := rc.client.RPush(rc.ctx, inboxKey, data).Err(); err != nil {
		return fmt.Errorf("error writing invitation inbox: %v", err)
	}
	rc.client.Expire(rc.ctx, inboxKey, 24*time.Hour)

	return rc.client.Publish(rc.ctx, redis_utils.JoinRequestChannel(), data).Err()
}

// FetchInvitationInbox returns the events queued for a child while they were
// offline, oldest first. Callers clear the inbox afterwards via CleanupKeys.
func (rc *RedisClient) FetchInvitationInbox(childID string) ([]redis_models.InvitationEvent, error) {
	inboxKey := redis_utils.FormatInvitationInboxKey(childID)
	entries, err := rc.client.LRange(rc.ctx, inboxKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("error reading invitation inbox: %v", err)
	}

	events := make([]redis_models.InvitationEvent, 0, len(entries))
	for _, entry := range entries {
		var event redis_models.InvitationEvent
		if err := json.Unmarshal([]byte(entry), &event); err != nil {
			log.Printf("[REALTIME-ERROR] Skipping malformed inbox entry for %s: %v", childID, err)
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

// SubscribeJoinRequests opens a subscription on the invitation feed channel
func (rc *RedisClient) SubscribeJoinRequests() *redis.PubSub {
	return rc.client.Subscribe(rc.ctx, redis_utils.JoinRequestChannel())
}

// SetChildOnline marks a child as connected to the realtime gateway
// Key format: "child:{id}:online"
// TTL: refreshed while the socket stays connected
func (rc *RedisClient) SetChildOnline(childID string) error {
	key := redis_utils.FormatChildPresenceKey(childID)
	return rc.client.Set(rc.ctx, key, time.Now().Unix(), 2*time.Minute).Err()
}

// SetChildOffline clears the presence key for a child
func (rc *RedisClient) SetChildOffline(childID string) error {
	key := redis_utils.FormatChildPresenceKey(childID)
	return rc.client.Del(rc.ctx, key).Err()
}

// IsChildOnline reports whether a child currently holds a presence key
func (rc *RedisClient) IsChildOnline(childID string) (bool, error) {
	key := redis_utils.FormatChildPresenceKey(childID)
	n, err := rc.client.Exists(rc.ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("error checking presence key: %v", err)
	}
	return n > 0, nil
}

// CleanupKeys removes the specified keys from Redis
func (rc *RedisClient) CleanupKeys(keys []string) error {
	for _, key := range keys {
		if err := rc.client.Del(rc.ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to cleanup Redis key %s: %v", key, err)
		}
	}
	return nil
}
