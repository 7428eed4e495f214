package metadata

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/tagurit/levelpack/internal/files/filesystem"
	"github.com/tagurit/levelpack/pkg/levelpack"
)

// Rule names reported in levelpack.ValidationError.Rule.
const (
	RuleRecord          = "record"
	RuleName            = "name"
	RuleDescription     = "description"
	RuleAuthor          = "author"
	RuleThumbnailExists = "thumbnail.exists"
	RuleThumbnailFile   = "thumbnail.file"
	RuleThumbnailFormat = "thumbnail.format"
	RuleThumbnailSize   = "thumbnail.size"
	RuleCreationTime    = "created"
	RuleLastUpdated     = "lastupdated"
	RuleUpdateOrder     = "lastupdated.order"
	RuleVersion         = "version"
)

const minimumLevelVersion = 1

// rule is one named check. check returns an empty string when the record passes.
type rule struct {
	name  string
	check func(c *validation, m *levelpack.LevelMetaData) string
}

// validation is the state of a single Validate or Check call. The thumbnail
// is stat'ed at most once so every thumbnail rule sees the same answer.
type validation struct {
	*Validator
	statted bool
	info    filesystem.FileInfo
	statErr error
}

func (c *validation) thumbnailInfo(p string) (filesystem.FileInfo, error) {
	if !c.statted {
		c.info, c.statErr = c.fs.Stat(p)
		c.statted = true
	}
	return c.info, c.statErr
}

// rules run in order; the first non-empty message wins.
// Every rule after RuleRecord may assume a non-nil record.
var rules = []rule{
	{RuleRecord, func(_ *validation, m *levelpack.LevelMetaData) string {
		if m == nil {
			return "Data object cannot be null."
		}
		return ""
	}},
	{RuleName, func(_ *validation, m *levelpack.LevelMetaData) string {
		if isBlank(m.Name) {
			return "Level name cannot be null, empty, or only consisting of whitespace characters."
		}
		return ""
	}},
	{RuleDescription, func(_ *validation, m *levelpack.LevelMetaData) string {
		if d, ok := m.Description.Get(); ok && isBlank(d) {
			return "Level description cannot be empty or only consisting of whitespace characters. Omit it instead."
		}
		return ""
	}},
	{RuleAuthor, func(_ *validation, m *levelpack.LevelMetaData) string {
		if isBlank(m.Author) {
			return "Author name cannot be null, empty, or only consisting of whitespace characters."
		}
		return ""
	}},
	{RuleThumbnailExists, func(c *validation, m *levelpack.LevelMetaData) string {
		p, ok := m.ThumbnailPath.Get()
		if !ok {
			return ""
		}
		if _, err := c.thumbnailInfo(p); err != nil {
			return fmt.Sprintf("Thumbnail does not exist at the specified path: %s", p)
		}
		return ""
	}},
	{RuleThumbnailFile, func(c *validation, m *levelpack.LevelMetaData) string {
		p, ok := m.ThumbnailPath.Get()
		if !ok {
			return ""
		}
		info, err := c.thumbnailInfo(p)
		if err != nil || !info.Mode().IsRegular() {
			return fmt.Sprintf("The specified path for the thumbnail does not point to a file: %s", p)
		}
		return ""
	}},
	{RuleThumbnailFormat, func(_ *validation, m *levelpack.LevelMetaData) string {
		p, ok := m.ThumbnailPath.Get()
		if !ok {
			return ""
		}
		if !slices.Contains(levelpack.AllowedThumbnailFormats, ThumbnailFormat(p)) {
			return "Thumbnail is not one of the allowed image file formats: " + strings.Join(levelpack.AllowedThumbnailFormats, ", ")
		}
		return ""
	}},
	{RuleThumbnailSize, func(c *validation, m *levelpack.LevelMetaData) string {
		p, ok := m.ThumbnailPath.Get()
		if !ok {
			return ""
		}
		info, err := c.thumbnailInfo(p)
		if err != nil {
			return fmt.Sprintf("Thumbnail does not exist at the specified path: %s", p)
		}
		if info.Size() > levelpack.MaxThumbnailSize {
			return fmt.Sprintf("Thumbnail cannot be bigger than %d bytes. Current size: %d", levelpack.MaxThumbnailSize, info.Size())
		}
		return ""
	}},
	{RuleCreationTime, func(c *validation, m *levelpack.LevelMetaData) string {
		if m.CreationTime.After(c.now()) {
			return "Creation time cannot be set in the future."
		}
		return ""
	}},
	{RuleLastUpdated, func(c *validation, m *levelpack.LevelMetaData) string {
		if m.LastUpdated.After(c.now()) {
			return "Time of last update cannot be set in the future."
		}
		return ""
	}},
	{RuleUpdateOrder, func(_ *validation, m *levelpack.LevelMetaData) string {
		if m.LastUpdated.Before(m.CreationTime) {
			return "Time of last update cannot be before creation time."
		}
		return ""
	}},
	{RuleVersion, func(_ *validation, m *levelpack.LevelMetaData) string {
		if m.Version < minimumLevelVersion {
			return "Level version cannot be lower than 1"
		}
		return ""
	}},
}

// Validator checks level metadata against the packaging rules.
// It only reads from its filesystem and never modifies the record.
type Validator struct {
	fs  filesystem.FileSystemProvider
	now func() time.Time
}

// NewValidator creates a validator reading thumbnails through fsys and
// comparing timestamps against now.
// A nil fsys selects the OS filesystem; a nil now selects the wall clock in UTC.
func NewValidator(fsys filesystem.FileSystemProvider, now func() time.Time) *Validator {
	if fsys == nil {
		fsys = filesystem.NewOSFileSystem()
	}
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Validator{fs: fsys, now: now}
}

// Validate reports whether m satisfies every rule. When it does not, the
// message of the first violated rule is returned; otherwise the message is empty.
func (v *Validator) Validate(m *levelpack.LevelMetaData) (bool, string) {
	if violation := v.firstViolation(m); violation != nil {
		return false, violation.Message
	}
	return true, ""
}

// Check runs the rules in order and returns the first violation as a
// *levelpack.ValidationError, or nil when m is valid.
func (v *Validator) Check(m *levelpack.LevelMetaData) error {
	if violation := v.firstViolation(m); violation != nil {
		return violation
	}
	return nil
}

func (v *Validator) firstViolation(m *levelpack.LevelMetaData) *levelpack.ValidationError {
	c := &validation{Validator: v}
	for _, r := range rules {
		if msg := r.check(c, m); msg != "" {
			return &levelpack.ValidationError{Rule: r.name, Message: msg}
		}
	}
	return nil
}

// Validate checks m against the OS filesystem and the current time.
func Validate(m *levelpack.LevelMetaData) (bool, string) {
	return NewValidator(nil, nil).Validate(m)
}

// ThumbnailFormat returns the thumbnail's format as written in its path: the
// text after the final '.', or the whole path when there is none.
// No case folding is applied, so "COVER.PNG" yields "PNG".
func ThumbnailFormat(path string) string {
	return path[strings.LastIndex(path, ".")+1:]
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
