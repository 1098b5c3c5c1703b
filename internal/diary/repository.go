package diary

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/at-ishikawa/stickerdiary/internal/storage"
)

//go:generate mockgen -source=repository.go -destination=../mocks/diary/mock_repository.go -package=mock_diary

// ErrNotFound is returned when no live diary has the requested id.
var ErrNotFound = errors.New("diary not found")

const (
	diariesKey = "diaries"
	trashKey   = "trash"
)

// Repository defines operations for managing diaries.
type Repository interface {
	GetAll(ctx context.Context, userID string) ([]Diary, error)
	GetByID(ctx context.Context, id string) (*Diary, error)
	GetPublicByID(ctx context.Context, id string) (*Diary, error)
	Create(ctx context.Context, userID string, content Content) (*Diary, error)
	Update(ctx context.Context, id string, content Content) (*Diary, error)
	Delete(ctx context.Context, id string) error
	GetTrash(ctx context.Context, userID string) ([]Diary, error)
	Restore(ctx context.Context, id string) (*Diary, error)
	PermanentDelete(ctx context.Context, id string) error
	EmptyTrash(ctx context.Context, userID string) error
	ToggleLike(ctx context.Context, id string) (*Diary, error)
	SetPublic(ctx context.Context, id string, public bool) (*Diary, error)
	Search(ctx context.Context, userID, keyword string) ([]Diary, error)
	SearchByDateRange(ctx context.Context, userID, from, to string) ([]Diary, error)
}

// StoreRepository implements Repository on a storage.Store.
// Live diaries and trashed diaries are kept as two JSON lists.
type StoreRepository struct {
	mu    sync.Mutex
	store storage.Store
	now   func() time.Time
	newID func() string
}

func NewStoreRepository(store storage.Store) *StoreRepository {
	return &StoreRepository{
		store: store,
		now:   time.Now,
		newID: func() string {
			return "diary_" + uuid.NewString()
		},
	}
}

func (r *StoreRepository) load(ctx context.Context, key string) ([]Diary, error) {
	var records []diaryRecord
	if _, err := storage.GetJSON(ctx, r.store, key, &records); err != nil {
		return nil, fmt.Errorf("storage.GetJSON(%s) > %w", key, err)
	}
	diaries := make([]Diary, 0, len(records))
	for _, record := range records {
		diaries = append(diaries, record.toDiary())
	}
	return diaries, nil
}

func (r *StoreRepository) save(ctx context.Context, key string, diaries []Diary) error {
	if diaries == nil {
		diaries = []Diary{}
	}
	if err := storage.SetJSON(ctx, r.store, key, diaries); err != nil {
		return fmt.Errorf("storage.SetJSON(%s) > %w", key, err)
	}
	return nil
}

func (r *StoreRepository) GetAll(ctx context.Context, userID string) ([]Diary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	diaries, err := r.load(ctx, diariesKey)
	if err != nil {
		return nil, err
	}
	return sortByDate(filterByUser(diaries, userID)), nil
}

func (r *StoreRepository) GetByID(ctx context.Context, id string) (*Diary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	diaries, err := r.load(ctx, diariesKey)
	if err != nil {
		return nil, err
	}
	index := indexOf(diaries, id)
	if index < 0 {
		return nil, ErrNotFound
	}
	return &diaries[index], nil
}

// GetPublicByID returns ErrNotFound for a diary that exists but is not public.
func (r *StoreRepository) GetPublicByID(ctx context.Context, id string) (*Diary, error) {
	d, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !d.IsPublic {
		return nil, ErrNotFound
	}
	return d, nil
}

func (r *StoreRepository) Create(ctx context.Context, userID string, content Content) (*Diary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	diaries, err := r.load(ctx, diariesKey)
	if err != nil {
		return nil, err
	}

	now := r.now()
	content = normalizeContent(content)
	if strings.TrimSpace(content.Title) == "" {
		content.Title = DefaultTitle
	}
	if content.Date == "" {
		content.Date = now.Format(DateLayout)
	}
	if content.Background == "" {
		content.Background = BackgroundPlain
	}

	d := Diary{
		ID:        r.newID(),
		UserID:    userID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	diaries = append(diaries, d)
	if err := r.save(ctx, diariesKey, diaries); err != nil {
		return nil, err
	}
	return &d, nil
}

// Update replaces the content of a diary. An empty date or background keeps the stored value.
func (r *StoreRepository) Update(ctx context.Context, id string, content Content) (*Diary, error) {
	return r.modify(ctx, id, func(d *Diary) {
		content = normalizeContent(content)
		if content.Date == "" {
			content.Date = d.Date
		}
		if content.Background == "" {
			content.Background = d.Background
		}
		d.Content = content
		d.UpdatedAt = r.now()
	})
}

func (r *StoreRepository) ToggleLike(ctx context.Context, id string) (*Diary, error) {
	return r.modify(ctx, id, func(d *Diary) {
		d.Likes++
	})
}

func (r *StoreRepository) SetPublic(ctx context.Context, id string, public bool) (*Diary, error) {
	return r.modify(ctx, id, func(d *Diary) {
		d.IsPublic = public
		d.UpdatedAt = r.now()
	})
}

func (r *StoreRepository) modify(ctx context.Context, id string, fn func(d *Diary)) (*Diary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	diaries, err := r.load(ctx, diariesKey)
	if err != nil {
		return nil, err
	}
	index := indexOf(diaries, id)
	if index < 0 {
		return nil, ErrNotFound
	}
	fn(&diaries[index])
	if err := r.save(ctx, diariesKey, diaries); err != nil {
		return nil, err
	}
	d := diaries[index]
	return &d, nil
}

// Delete moves a diary to the trash.
func (r *StoreRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	diaries, err := r.load(ctx, diariesKey)
	if err != nil {
		return err
	}
	index := indexOf(diaries, id)
	if index < 0 {
		return ErrNotFound
	}
	trash, err := r.load(ctx, trashKey)
	if err != nil {
		return err
	}

	d := diaries[index]
	deletedAt := r.now()
	d.DeletedAt = &deletedAt
	trash = append(trash, d)
	diaries = slices.Delete(diaries, index, index+1)

	if err := r.save(ctx, trashKey, trash); err != nil {
		return err
	}
	return r.save(ctx, diariesKey, diaries)
}

func (r *StoreRepository) GetTrash(ctx context.Context, userID string) ([]Diary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	trash, err := r.load(ctx, trashKey)
	if err != nil {
		return nil, err
	}
	trash = filterByUser(trash, userID)
	sort.SliceStable(trash, func(i, j int) bool {
		return deletedAt(trash[i]).After(deletedAt(trash[j]))
	})
	return trash, nil
}

func (r *StoreRepository) Restore(ctx context.Context, id string) (*Diary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	trash, err := r.load(ctx, trashKey)
	if err != nil {
		return nil, err
	}
	index := indexOf(trash, id)
	if index < 0 {
		return nil, ErrNotFound
	}
	diaries, err := r.load(ctx, diariesKey)
	if err != nil {
		return nil, err
	}

	d := trash[index]
	d.DeletedAt = nil
	diaries = append(diaries, d)
	trash = slices.Delete(trash, index, index+1)

	if err := r.save(ctx, diariesKey, diaries); err != nil {
		return nil, err
	}
	if err := r.save(ctx, trashKey, trash); err != nil {
		return nil, err
	}
	return &d, nil
}

// PermanentDelete removes a trashed diary for good.
func (r *StoreRepository) PermanentDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	trash, err := r.load(ctx, trashKey)
	if err != nil {
		return err
	}
	index := indexOf(trash, id)
	if index < 0 {
		return ErrNotFound
	}
	return r.save(ctx, trashKey, slices.Delete(trash, index, index+1))
}

func (r *StoreRepository) EmptyTrash(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	trash, err := r.load(ctx, trashKey)
	if err != nil {
		return err
	}
	trash = slices.DeleteFunc(trash, func(d Diary) bool {
		return d.UserID == userID
	})
	return r.save(ctx, trashKey, trash)
}

// Search matches keyword against title and memo, ignoring case.
func (r *StoreRepository) Search(ctx context.Context, userID, keyword string) ([]Diary, error) {
	diaries, err := r.GetAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return diaries, nil
	}
	return slices.DeleteFunc(diaries, func(d Diary) bool {
		return !strings.Contains(strings.ToLower(d.Title), keyword) &&
			!strings.Contains(strings.ToLower(d.Memo), keyword)
	}), nil
}

// SearchByDateRange returns diaries dated within [from, to]. Either bound may be empty.
func (r *StoreRepository) SearchByDateRange(ctx context.Context, userID, from, to string) ([]Diary, error) {
	for _, bound := range []string{from, to} {
		if bound == "" {
			continue
		}
		if _, err := time.Parse(DateLayout, bound); err != nil {
			return nil, fmt.Errorf("time.Parse(%s) > %w", bound, err)
		}
	}

	diaries, err := r.GetAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(diaries, func(d Diary) bool {
		return (from != "" && d.Date < from) || (to != "" && d.Date > to)
	}), nil
}

func normalizeContent(content Content) Content {
	if content.Stickers == nil {
		content.Stickers = []Sticker{}
	}
	if content.Cards == nil {
		content.Cards = []PlacedCard{}
	}
	if content.Comments == nil {
		content.Comments = map[string][]Comment{}
	}
	return content
}

func indexOf(diaries []Diary, id string) int {
	return slices.IndexFunc(diaries, func(d Diary) bool {
		return d.ID == id
	})
}

func filterByUser(diaries []Diary, userID string) []Diary {
	return slices.DeleteFunc(diaries, func(d Diary) bool {
		return d.UserID != userID
	})
}

// sortByDate orders newest date first, then newest creation first.
func sortByDate(diaries []Diary) []Diary {
	sort.SliceStable(diaries, func(i, j int) bool {
		if diaries[i].Date != diaries[j].Date {
			return diaries[i].Date > diaries[j].Date
		}
		return diaries[i].CreatedAt.After(diaries[j].CreatedAt)
	})
	return diaries
}

func deletedAt(d Diary) time.Time {
	if d.DeletedAt == nil {
		return time.Time{}
	}
	return *d.DeletedAt
}
