package store

import "strings"

// Collection keys. The names match what the web app persisted, including the
// underscore in KeyScheduledSessions, so existing data can be imported as is.
const (
	KeyJoinedCommunities = "erudite-joined-communities"
	KeyCustomCommunities = "erudite-communities"
	KeyProfile           = "erudite-profile"
	KeyTeachSkills       = "erudite-teach-skills"
	KeyLearnSkills       = "erudite-learn-skills"
	KeyScheduledSessions = "erudite_scheduled_sessions"
	KeySavedPosts        = "erudite-saved-posts"
	KeyLikedPosts        = "erudite-liked-posts"
	KeyConnections       = "erudite-connections"

	communityPostsPrefix = "erudite-community-posts-"
	skillPostsPrefix     = "erudite-skill-posts-"
)

// CommunityPostsKey returns the key holding the posts of a community
func CommunityPostsKey(communityID string) string {
	return communityPostsPrefix + communityID
}

// SkillPostsKey returns the key holding the posts of a skill
func SkillPostsKey(skillSlug string) string {
	return skillPostsPrefix + skillSlug
}

// FixedKeys lists every key that does not depend on a community or skill
func FixedKeys() []string {
	return []string{
		KeyJoinedCommunities,
		KeyCustomCommunities,
		KeyProfile,
		KeyTeachSkills,
		KeyLearnSkills,
		KeyScheduledSessions,
		KeySavedPosts,
		KeyLikedPosts,
		KeyConnections,
	}
}

// IsAppKey reports whether key belongs to the app
func IsAppKey(key string) bool {
	for _, k := range FixedKeys() {
		if k == key {
			return true
		}
	}
	for _, prefix := range []string{communityPostsPrefix, skillPostsPrefix} {
		if len(key) > len(prefix) && strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}
