package eventbus

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
)

// PublishWithSeasonScope publishes msg on {baseTopic}.{seasonID} so viewers can
// subscribe to one season ("season.updated.v1.<id>") or all of them ("season.updated.v1.*").
func PublishWithSeasonScope(pub message.Publisher, baseTopic, seasonID string, msg *message.Message) error {
	if seasonID == "" {
		return fmt.Errorf("seasonID cannot be empty for season-scoped publish")
	}
	return pub.Publish(FormatSeasonScopedTopic(baseTopic, seasonID), msg)
}

// FormatSeasonScopedTopic formats a topic with the season suffix without publishing.
func FormatSeasonScopedTopic(baseTopic, seasonID string) string {
	return fmt.Sprintf("%s.%s", baseTopic, seasonID)
}
