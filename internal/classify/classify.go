// Package classify derives tracking facts from raw platform events: which
// magnitude role a member holds, whether a channel counts as an art channel,
// and whether a post counts as an art submission. All functions are pure.
package classify

import (
	"scad/internal/models"
	"scad/internal/structures"
	"strings"
)

type Classifier struct {
	magRoles    []string
	artChannels []string
}

func NewClassifier(conf *structures.Config) *Classifier {
	return &Classifier{
		magRoles:    conf.Tracking.MagRoles,
		artChannels: conf.Tracking.ArtChannels,
	}
}

// ResolveRole returns the highest-priority configured magnitude role whose
// text is a case-insensitive substring of any assigned role name, or
// models.RoleNone. Matching is deliberately loose so operators may decorate
// platform role names ("Mag 3 🔥" still matches "Mag 3").
func (c *Classifier) ResolveRole(roleNames []string) string {
	for _, magRole := range c.magRoles {
		needle := strings.ToLower(magRole)
		for _, name := range roleNames {
			if strings.Contains(strings.ToLower(name), needle) {
				return magRole
			}
		}
	}
	return models.RoleNone
}

// IsArtChannel reports whether the channel name contains any configured
// art-channel keyword, case-insensitively.
func (c *Classifier) IsArtChannel(channelName string) bool {
	lower := strings.ToLower(channelName)
	for _, keyword := range c.artChannels {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// IsArtSubmission reports whether a post counts as an art submission: it
// must land in an art channel and carry at least one attachment. Text-only
// posts never count.
func (c *Classifier) IsArtSubmission(channelName string, attachments int) bool {
	return attachments > 0 && c.IsArtChannel(channelName)
}
