package card

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/at-ishikawa/stickerdiary/internal/storage"
)

//go:generate mockgen -source=repository.go -destination=../mocks/card/mock_repository.go -package=mock_card

var (
	ErrNotFound       = errors.New("card not found")
	ErrFolderNotFound = errors.New("folder not found")
)

const (
	cardsKey   = "cards"
	foldersKey = "folders"
)

// Repository defines operations for managing catalog cards and folders.
type Repository interface {
	GetAll(ctx context.Context) ([]Card, error)
	GetByID(ctx context.Context, id string) (*Card, error)
	GetByStatus(ctx context.Context, status Status) ([]Card, error)
	GetByFolder(ctx context.Context, folderID string) ([]Card, error)
	Create(ctx context.Context, c Card) (*Card, error)
	Update(ctx context.Context, id string, update Update) (*Card, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Card, error)
	MoveToFolder(ctx context.Context, id, folderID string) (*Card, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string) ([]Card, error)
	Filter(ctx context.Context, filter Filter) ([]Card, error)
	Stats(ctx context.Context) (Stats, error)

	GetFolders(ctx context.Context) ([]Folder, error)
	CreateFolder(ctx context.Context, name, color string) (*Folder, error)
	UpdateFolder(ctx context.Context, id, name, color string) (*Folder, error)
	DeleteFolder(ctx context.Context, id string) error
}

// StoreRepository implements Repository on a storage.Store.
type StoreRepository struct {
	mu    sync.Mutex
	store storage.Store
	now   func() time.Time
	newID func(prefix string) string
}

func NewStoreRepository(store storage.Store) *StoreRepository {
	return &StoreRepository{
		store: store,
		now:   time.Now,
		newID: func(prefix string) string {
			return prefix + "_" + uuid.NewString()
		},
	}
}

func (r *StoreRepository) loadCards(ctx context.Context) ([]Card, error) {
	var cards []Card
	if _, err := storage.GetJSON(ctx, r.store, cardsKey, &cards); err != nil {
		return nil, fmt.Errorf("storage.GetJSON(%s) > %w", cardsKey, err)
	}
	return cards, nil
}

func (r *StoreRepository) saveCards(ctx context.Context, cards []Card) error {
	if cards == nil {
		cards = []Card{}
	}
	if err := storage.SetJSON(ctx, r.store, cardsKey, cards); err != nil {
		return fmt.Errorf("storage.SetJSON(%s) > %w", cardsKey, err)
	}
	return nil
}

func (r *StoreRepository) loadFolders(ctx context.Context) ([]Folder, error) {
	var folders []Folder
	if _, err := storage.GetJSON(ctx, r.store, foldersKey, &folders); err != nil {
		return nil, fmt.Errorf("storage.GetJSON(%s) > %w", foldersKey, err)
	}
	return folders, nil
}

func (r *StoreRepository) saveFolders(ctx context.Context, folders []Folder) error {
	if folders == nil {
		folders = []Folder{}
	}
	if err := storage.SetJSON(ctx, r.store, foldersKey, folders); err != nil {
		return fmt.Errorf("storage.SetJSON(%s) > %w", foldersKey, err)
	}
	return nil
}

func (r *StoreRepository) GetAll(ctx context.Context) ([]Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.loadCards(ctx)
}

func (r *StoreRepository) GetByID(ctx context.Context, id string) (*Card, error) {
	cards, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	index := slices.IndexFunc(cards, func(c Card) bool {
		return c.ID == id
	})
	if index < 0 {
		return nil, ErrNotFound
	}
	return &cards[index], nil
}

func (r *StoreRepository) GetByStatus(ctx context.Context, status Status) ([]Card, error) {
	return r.Filter(ctx, Filter{Status: status})
}

// GetByFolder returns unfiled cards for an empty folderID.
func (r *StoreRepository) GetByFolder(ctx context.Context, folderID string) ([]Card, error) {
	cards, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(cards, func(c Card) bool {
		return c.FolderID != folderID
	}), nil
}

// Create stores a new card. An ID given by the caller is kept, which lets catalog files keep stable ids.
func (r *StoreRepository) Create(ctx context.Context, c Card) (*Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cards, err := r.loadCards(ctx)
	if err != nil {
		return nil, err
	}

	if c.ID == "" {
		c.ID = r.newID("card")
	} else if slices.ContainsFunc(cards, func(existing Card) bool { return existing.ID == c.ID }) {
		return nil, fmt.Errorf("card %s already exists", c.ID)
	}
	if strings.TrimSpace(c.Title) == "" {
		c.Title = DefaultTitle
	}
	if c.Platform == "" {
		c.Platform = PlatformOther
	}
	if c.Type == "" {
		c.Type = DefaultType
	}
	if c.Genre == nil {
		c.Genre = []string{}
	}
	if c.Status == "" {
		c.Status = StatusPlanToWatch
	}
	now := r.now()
	c.CreatedAt = now
	c.UpdatedAt = now

	cards = append(cards, c)
	if err := r.saveCards(ctx, cards); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *StoreRepository) Update(ctx context.Context, id string, update Update) (*Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cards, err := r.loadCards(ctx)
	if err != nil {
		return nil, err
	}
	index := slices.IndexFunc(cards, func(c Card) bool {
		return c.ID == id
	})
	if index < 0 {
		return nil, ErrNotFound
	}
	update.apply(&cards[index])
	cards[index].UpdatedAt = r.now()
	if err := r.saveCards(ctx, cards); err != nil {
		return nil, err
	}
	c := cards[index]
	return &c, nil
}

func (r *StoreRepository) UpdateStatus(ctx context.Context, id string, status Status) (*Card, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("unknown status %q", status)
	}
	return r.Update(ctx, id, Update{Status: &status})
}

// MoveToFolder files a card into folderID, or unfiles it when folderID is empty.
func (r *StoreRepository) MoveToFolder(ctx context.Context, id, folderID string) (*Card, error) {
	if folderID != "" {
		folders, err := r.GetFolders(ctx)
		if err != nil {
			return nil, err
		}
		if !slices.ContainsFunc(folders, func(f Folder) bool { return f.ID == folderID }) {
			return nil, ErrFolderNotFound
		}
	}
	return r.Update(ctx, id, Update{FolderID: &folderID})
}

// Delete removes a card from the catalog. Diaries keep their snapshots of it.
func (r *StoreRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cards, err := r.loadCards(ctx)
	if err != nil {
		return err
	}
	return r.saveCards(ctx, slices.DeleteFunc(cards, func(c Card) bool {
		return c.ID == id
	}))
}

// Search matches query against title, author and description, ignoring case.
func (r *StoreRepository) Search(ctx context.Context, query string) ([]Card, error) {
	cards, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	return slices.DeleteFunc(cards, func(c Card) bool {
		return !strings.Contains(strings.ToLower(c.Title), q) &&
			!strings.Contains(strings.ToLower(c.Author), q) &&
			!strings.Contains(strings.ToLower(c.Description), q)
	}), nil
}

func (r *StoreRepository) Filter(ctx context.Context, filter Filter) ([]Card, error) {
	cards, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(cards, func(c Card) bool {
		return !filter.match(c)
	}), nil
}

func (r *StoreRepository) Stats(ctx context.Context) (Stats, error) {
	cards, err := r.GetAll(ctx)
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{Total: len(cards)}
	for _, c := range cards {
		switch c.Status {
		case StatusWatching:
			stats.Watching++
		case StatusPlanToWatch:
			stats.PlanToWatch++
		case StatusCompleted:
			stats.Completed++
		case StatusOnHold:
			stats.OnHold++
		}
	}
	return stats, nil
}

func (r *StoreRepository) GetFolders(ctx context.Context) ([]Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.loadFolders(ctx)
}

func (r *StoreRepository) CreateFolder(ctx context.Context, name, color string) (*Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	folders, err := r.loadFolders(ctx)
	if err != nil {
		return nil, err
	}
	if color == "" {
		color = DefaultFolderColor
	}
	folder := Folder{
		ID:        r.newID("folder"),
		Name:      name,
		Color:     color,
		CreatedAt: r.now(),
	}
	folders = append(folders, folder)
	if err := r.saveFolders(ctx, folders); err != nil {
		return nil, err
	}
	return &folder, nil
}

// UpdateFolder changes the name and colour of a folder. Empty values keep the current ones.
func (r *StoreRepository) UpdateFolder(ctx context.Context, id, name, color string) (*Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	folders, err := r.loadFolders(ctx)
	if err != nil {
		return nil, err
	}
	index := slices.IndexFunc(folders, func(f Folder) bool {
		return f.ID == id
	})
	if index < 0 {
		return nil, ErrFolderNotFound
	}
	if name != "" {
		folders[index].Name = name
	}
	if color != "" {
		folders[index].Color = color
	}
	if err := r.saveFolders(ctx, folders); err != nil {
		return nil, err
	}
	folder := folders[index]
	return &folder, nil
}

// DeleteFolder removes a folder and unfiles the cards in it.
func (r *StoreRepository) DeleteFolder(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	folders, err := r.loadFolders(ctx)
	if err != nil {
		return err
	}
	if err := r.saveFolders(ctx, slices.DeleteFunc(folders, func(f Folder) bool {
		return f.ID == id
	})); err != nil {
		return err
	}

	cards, err := r.loadCards(ctx)
	if err != nil {
		return err
	}
	for i := range cards {
		if cards[i].FolderID == id {
			cards[i].FolderID = ""
		}
	}
	return r.saveCards(ctx, cards)
}
