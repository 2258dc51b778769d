package manifest

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// itemGUID derives a deterministic feed GUID from a post slug using go-hashid.
// Slugs are unique within a build, and the derivation is stable across builds
// so feed readers never see an unchanged post as new.
func itemGUID(slug string) string {
	key := "go-blog:post:" + strings.TrimSpace(slug)
	uid, err := hashid.NewUUID(key, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		uid = uuid.NewSHA1(uuid.NameSpaceOID, []byte(key))
	}
	return uid.String()
}
