// Package tagview serves the tag manager: CRUD over tags and tag groups
// plus the display transformations the admin UI renders (grouping, letter
// filtering, picker selection). All reshaping happens here so handlers and
// templates stay dumb.
package tagview

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/sync/errgroup"

	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/repository"
)

// UngroupedID is the bucket key for tags without a group.
const UngroupedID int64 = 0

// DigitBucket is the letter-filter bucket collecting names that start
// with a digit.
const DigitBucket = "0-9"

// Service provides tag manager use cases.
type Service struct {
	Tags   repository.TagRepository
	Groups repository.TagGroupRepository
}

// GroupedTags is the tag manager page model: every group with its tags in
// sort order, plus the ungrouped bucket.
type GroupedTags struct {
	Groups    []*entity.TagGroup
	ByGroup   map[int64][]*entity.Tag
	Ungrouped []*entity.Tag
}

// All flattens the overview back into one tag list, grouped tags first
// in group order, the ungrouped bucket last.
func (g *GroupedTags) All() []*entity.Tag {
	var out []*entity.Tag
	for _, grp := range g.Groups {
		out = append(out, g.ByGroup[grp.ID]...)
	}
	return append(out, g.Ungrouped...)
}

// Narrow returns a view of the overview keeping only tags that match the
// letter selector. Groups emptied by the filter stay listed so the
// manager page keeps its structure; an empty selector returns g itself.
func (g *GroupedTags) Narrow(letter string) *GroupedTags {
	if letter == "" {
		return g
	}
	out := &GroupedTags{
		Groups:    g.Groups,
		ByGroup:   make(map[int64][]*entity.Tag, len(g.ByGroup)),
		Ungrouped: FilterByLetter(g.Ungrouped, letter),
	}
	for id, tags := range g.ByGroup {
		out.ByGroup[id] = FilterByLetter(tags, letter)
	}
	return out
}

// Overview loads tags and groups concurrently and reduces the flat tag
// list into per-group buckets. Tags whose GroupID matches no existing
// group land in the ungrouped bucket rather than disappearing.
func (s *Service) Overview(ctx context.Context) (*GroupedTags, error) {
	var (
		tags   []*entity.Tag
		groups []*entity.TagGroup
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if tags, err = s.Tags.List(gctx); err != nil {
			return fmt.Errorf("list tags: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if groups, err = s.Groups.List(gctx); err != nil {
			return fmt.Errorf("list tag groups: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return groupTags(tags, groups), nil
}

// groupTags is the single-pass reduction of the flat list into buckets.
func groupTags(tags []*entity.Tag, groups []*entity.TagGroup) *GroupedTags {
	known := make(map[int64]bool, len(groups))
	for _, grp := range groups {
		known[grp.ID] = true
	}

	out := &GroupedTags{
		Groups:  groups,
		ByGroup: make(map[int64][]*entity.Tag, len(groups)),
	}
	for _, t := range tags {
		if t.GroupID == UngroupedID || !known[t.GroupID] {
			out.Ungrouped = append(out.Ungrouped, t)
			continue
		}
		out.ByGroup[t.GroupID] = append(out.ByGroup[t.GroupID], t)
	}

	sort.SliceStable(out.Groups, func(i, j int) bool {
		return out.Groups[i].SortOrder < out.Groups[j].SortOrder
	})
	for id := range out.ByGroup {
		sortTags(out.ByGroup[id])
	}
	sortTags(out.Ungrouped)
	return out
}

func sortTags(tags []*entity.Tag) {
	sort.SliceStable(tags, func(i, j int) bool {
		if tags[i].SortOrder != tags[j].SortOrder {
			return tags[i].SortOrder < tags[j].SortOrder
		}
		return strings.ToLower(tags[i].Name) < strings.ToLower(tags[j].Name)
	})
}

// FilterByLetter keeps tags whose name starts with the given letter,
// case-insensitively. The DigitBucket selector matches any leading digit.
// An empty selector returns the input unchanged.
func FilterByLetter(tags []*entity.Tag, letter string) []*entity.Tag {
	if letter == "" {
		return tags
	}

	out := make([]*entity.Tag, 0, len(tags))
	for _, t := range tags {
		if matchesLetter(t.Name, letter) {
			out = append(out, t)
		}
	}
	return out
}

func matchesLetter(name, letter string) bool {
	runes := []rune(name)
	if len(runes) == 0 {
		return false
	}
	if letter == DigitBucket {
		return unicode.IsDigit(runes[0])
	}
	sel := []rune(strings.ToLower(letter))
	if len(sel) == 0 {
		return false
	}
	return unicode.ToLower(runes[0]) == sel[0]
}

// Letters returns the selectable letter set for the given tags: every
// distinct leading letter uppercased, digits collapsed into DigitBucket,
// sorted with the digit bucket first.
func Letters(tags []*entity.Tag) []string {
	seen := make(map[string]bool)
	for _, t := range tags {
		runes := []rune(t.Name)
		if len(runes) == 0 {
			continue
		}
		if unicode.IsDigit(runes[0]) {
			seen[DigitBucket] = true
			continue
		}
		seen[string(unicode.ToUpper(runes[0]))] = true
	}

	letters := make([]string, 0, len(seen))
	for l := range seen {
		if l == DigitBucket {
			continue
		}
		letters = append(letters, l)
	}
	sort.Strings(letters)
	if seen[DigitBucket] {
		letters = append([]string{DigitBucket}, letters...)
	}
	return letters
}

// Toggle flips the presence of id in the selection and returns the new
// selection. Adding never duplicates; order of the kept ids is preserved.
func Toggle(selected []int64, id int64) []int64 {
	for i, existing := range selected {
		if existing == id {
			return append(selected[:i:i], selected[i+1:]...)
		}
	}
	return append(selected, id)
}

// CreateTag validates and stores a new tag.
func (s *Service) CreateTag(ctx context.Context, tag *entity.Tag) (*entity.Tag, error) {
	if err := tag.Validate(); err != nil {
		return nil, err
	}
	created, err := s.Tags.Create(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return created, nil
}

// UpdateTag validates and updates an existing tag.
func (s *Service) UpdateTag(ctx context.Context, tag *entity.Tag) (*entity.Tag, error) {
	if tag.ID == 0 {
		return nil, fmt.Errorf("%w: tag id is required", entity.ErrInvalidInput)
	}
	if err := tag.Validate(); err != nil {
		return nil, err
	}
	updated, err := s.Tags.Update(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("update tag %d: %w", tag.ID, err)
	}
	return updated, nil
}

// DeleteTag removes a tag.
func (s *Service) DeleteTag(ctx context.Context, id int64) error {
	if id == 0 {
		return fmt.Errorf("%w: tag id is required", entity.ErrInvalidInput)
	}
	if err := s.Tags.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete tag %d: %w", id, err)
	}
	return nil
}

// CreateGroup validates and stores a new tag group.
func (s *Service) CreateGroup(ctx context.Context, group *entity.TagGroup) (*entity.TagGroup, error) {
	if err := group.Validate(); err != nil {
		return nil, err
	}
	created, err := s.Groups.Create(ctx, group)
	if err != nil {
		return nil, fmt.Errorf("create tag group: %w", err)
	}
	return created, nil
}

// UpdateGroup validates and updates an existing tag group.
func (s *Service) UpdateGroup(ctx context.Context, group *entity.TagGroup) (*entity.TagGroup, error) {
	if group.ID == 0 {
		return nil, fmt.Errorf("%w: tag group id is required", entity.ErrInvalidInput)
	}
	if err := group.Validate(); err != nil {
		return nil, err
	}
	updated, err := s.Groups.Update(ctx, group)
	if err != nil {
		return nil, fmt.Errorf("update tag group %d: %w", group.ID, err)
	}
	return updated, nil
}

// DeleteGroup removes a tag group. The backend reassigns its tags to the
// ungrouped bucket.
func (s *Service) DeleteGroup(ctx context.Context, id int64) error {
	if id == 0 {
		return fmt.Errorf("%w: tag group id is required", entity.ErrInvalidInput)
	}
	if err := s.Groups.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete tag group %d: %w", id, err)
	}
	return nil
}
