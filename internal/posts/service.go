package posts

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/joonpark/post-board/internal/apperr"
	"github.com/joonpark/post-board/internal/models"
)

// MaxTitleLen is the longest accepted post title, in characters.
const MaxTitleLen = 100

// PostStore defines the interface for post persistence.
type PostStore interface {
	InsertPost(ctx context.Context, post *models.Post) (*models.Post, error)
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	ListPostsPage(ctx context.Context, offset, limit int) ([]models.Post, int64, error)
	ReplacePostFields(ctx context.Context, id, title, content string, updatedAt time.Time) error
	DeletePostByID(ctx context.Context, id string) error
}

// UserStore is the slice of user persistence the post service needs to
// resolve authors.
type UserStore interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]models.User, error)
}

// Service implements post CRUD with author-only mutation.
type Service struct {
	posts PostStore
	users UserStore
}

func NewService(posts PostStore, users UserStore) *Service {
	return &Service{posts: posts, users: users}
}

// validateInput trims and checks title/content against the board rules.
func validateInput(title, content string) (string, string, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return "", "", apperr.WithMessage(apperr.ErrValidation, "title and content are required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLen {
		return "", "", apperr.WithMessage(apperr.ErrValidation, "title must be at most 100 characters")
	}
	return title, content, nil
}

// List returns one page of posts, newest first, with author projections
// attached, plus the total post count.
func (s *Service) List(ctx context.Context, page, limit int) ([]models.Post, int64, error) {
	offset := (page - 1) * limit
	posts, total, err := s.posts.ListPostsPage(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	if err := s.attachAuthors(ctx, posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// Get returns a single post with its author projection.
func (s *Service) Get(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.attachAuthor(ctx, post)
	return post, nil
}

// Create persists a new post owned by the authenticated user. The author
// id comes from the verified token, never from the request body, and must
// still resolve to an existing user.
func (s *Service) Create(ctx context.Context, authorID string, req models.PostRequest) (*models.Post, error) {
	author, err := s.resolveUser(ctx, authorID)
	if err != nil {
		return nil, err
	}

	title, content, err := validateInput(req.Title, req.Content)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	post := &models.Post{
		Title:     title,
		Content:   content,
		AuthorID:  author.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	post, err = s.posts.InsertPost(ctx, post)
	if err != nil {
		return nil, err
	}
	view := author.AuthorView()
	post.Author = &view
	return post, nil
}

// Update replaces title and content of the caller's own post and
// refreshes the update timestamp.
func (s *Service) Update(ctx context.Context, id, requestorID string, req models.PostRequest) (*models.Post, error) {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != requestorID {
		return nil, apperr.WithMessage(apperr.ErrForbidden, "you do not have permission to edit this post")
	}

	title, content, err := validateInput(req.Title, req.Content)
	if err != nil {
		return nil, err
	}

	if err := s.posts.ReplacePostFields(ctx, id, title, content, time.Now()); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete permanently removes the caller's own post.
func (s *Service) Delete(ctx context.Context, id, requestorID string) error {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != requestorID {
		return apperr.WithMessage(apperr.ErrForbidden, "you do not have permission to delete this post")
	}
	return s.posts.DeletePostByID(ctx, id)
}

// resolveUser guards mutations against stale or forged token claims.
func (s *Service) resolveUser(ctx context.Context, id string) (*models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.ErrUserNotFound
	}
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) attachAuthor(ctx context.Context, post *models.Post) {
	user, err := s.users.GetUserByID(ctx, post.AuthorID)
	if err != nil {
		return // author row gone; post ships without the projection
	}
	view := user.AuthorView()
	post.Author = &view
}

func (s *Service) attachAuthors(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(posts))
	ids := make([]string, 0, len(posts))
	for i := range posts {
		if !seen[posts[i].AuthorID] {
			seen[posts[i].AuthorID] = true
			ids = append(ids, posts[i].AuthorID)
		}
	}

	users, err := s.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i := range posts {
		if u, ok := users[posts[i].AuthorID]; ok {
			view := u.AuthorView()
			posts[i].Author = &view
		}
	}
	return nil
}
