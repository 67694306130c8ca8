package comment_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"arena-comments/internal/dblock"
	"arena-comments/internal/domain"
	"arena-comments/internal/repository"
	"arena-comments/internal/service/comment"
	"arena-comments/internal/service/gate"
	"arena-comments/tests/mocks"
)

type fixture struct {
	commentRepo  *mocks.CommentRepository
	revisionRepo *mocks.RevisionRepository
	subsRepo     *mocks.SubmissionRepository
	tx           *mocks.Transactor
	svc          comment.Service
}

func newFixture() *fixture {
	commentRepo := new(mocks.CommentRepository)
	revisionRepo := new(mocks.RevisionRepository)
	subsRepo := new(mocks.SubmissionRepository)

	repos := &repository.Repositories{
		Comment:  commentRepo,
		Revision: revisionRepo,
	}
	tx := &mocks.Transactor{Repos: repos}

	return &fixture{
		commentRepo:  commentRepo,
		revisionRepo: revisionRepo,
		subsRepo:     subsRepo,
		tx:           tx,
		svc:          comment.NewService(repos, tx, gate.NewService(subsRepo), dblock.Default(), nil, 0),
	}
}

var testPage = domain.PageRef{Type: "problem", Key: "two-sum"}

func provenUser() *domain.User {
	return &domain.User{ID: uuid.New(), Username: "solver", Role: string(domain.RoleMember)}
}

func validInput() domain.CreateCommentInput {
	return domain.CreateCommentInput{Title: "Hint request", Body: "Is there an O(n) approach?"}
}

func TestSubmit_CreatesCommentAndOneRevision(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	user := provenUser()

	f.subsRepo.On("HasFullScore", ctx, user.ID).Return(true, nil).Once()
	f.commentRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Comment) bool {
		return c.PageType == testPage.Type && c.PageKey == testPage.Key && c.UserID == user.ID
	})).Return(nil).Once()

	var recorded *domain.Revision
	f.revisionRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Revision")).
		Run(func(args mock.Arguments) {
			recorded = args.Get(1).(*domain.Revision)
		}).Return(nil).Once()

	ua := "test-agent"
	created, err := f.svc.Submit(ctx, user, testPage, validInput(), comment.RequestMeta{UserAgent: &ua})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.True(t, f.tx.Committed)

	require.NotNil(t, recorded)
	assert.Equal(t, created.ID, recorded.EntityID)
	assert.Equal(t, domain.EntityComment, recorded.EntityType)
	assert.Equal(t, domain.RevisionPostedComment, recorded.Message)
	assert.Equal(t, user.ID, recorded.UserID)
	assert.NotEmpty(t, recorded.Snapshot)
	require.NotNil(t, recorded.UserAgent)
	assert.Equal(t, ua, *recorded.UserAgent)

	f.commentRepo.AssertExpectations(t)
	f.revisionRepo.AssertExpectations(t)
}

func TestSubmit_MutedUserAlwaysRejected(t *testing.T) {
	f := newFixture()
	user := provenUser()
	user.Muted = true

	created, err := f.svc.Submit(context.Background(), user, testPage, validInput(), comment.RequestMeta{})

	assert.Nil(t, created)
	_, isValidation := domain.AsValidationErrors(err)
	assert.True(t, isValidation)

	f.commentRepo.AssertNotCalled(t, "Create")
	f.revisionRepo.AssertNotCalled(t, "Create")
	assert.False(t, f.tx.Committed)
}

func TestSubmit_UnprovenUserRejectedUntilFirstSolve(t *testing.T) {
	ctx := context.Background()
	user := provenUser()

	f := newFixture()
	f.subsRepo.On("HasFullScore", ctx, user.ID).Return(false, nil).Once()

	created, err := f.svc.Submit(ctx, user, testPage, validInput(), comment.RequestMeta{})
	assert.Nil(t, created)
	_, isValidation := domain.AsValidationErrors(err)
	assert.True(t, isValidation)
	f.commentRepo.AssertNotCalled(t, "Create")

	// Same call succeeds once a full-score submission exists.
	f = newFixture()
	f.subsRepo.On("HasFullScore", ctx, user.ID).Return(true, nil).Once()
	f.commentRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	f.revisionRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	created, err = f.svc.Submit(ctx, user, testPage, validInput(), comment.RequestMeta{})
	require.NoError(t, err)
	assert.NotNil(t, created)
}

func TestSubmit_EmptyFieldsRejectedBeforeGate(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Submit(context.Background(), provenUser(), testPage,
		domain.CreateCommentInput{Title: "  ", Body: ""}, comment.RequestMeta{})

	assert.Nil(t, created)
	verrs, ok := domain.AsValidationErrors(err)
	require.True(t, ok)
	assert.Len(t, verrs, 2)

	f.subsRepo.AssertNotCalled(t, "HasFullScore")
	f.commentRepo.AssertNotCalled(t, "Create")
}

func TestSubmit_ParentMustBelongToSamePage(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	parentID := uuid.New()

	f.commentRepo.On("GetByID", ctx, parentID).Return(&domain.Comment{
		ID:       parentID,
		PageType: "problem",
		PageKey:  "other-problem",
	}, nil).Once()

	input := validInput()
	input.ParentID = &parentID

	created, err := f.svc.Submit(ctx, provenUser(), testPage, input, comment.RequestMeta{})

	assert.Nil(t, created)
	verrs, ok := domain.AsValidationErrors(err)
	require.True(t, ok)
	require.Len(t, verrs, 1)
	assert.Equal(t, "parent_id", verrs[0].Field)
	assert.Contains(t, verrs[0].Message, "different page")

	f.commentRepo.AssertNotCalled(t, "Create")
}

func TestSubmit_MissingParentRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	parentID := uuid.New()

	f.commentRepo.On("GetByID", ctx, parentID).Return(nil, nil).Once()

	input := validInput()
	input.ParentID = &parentID

	_, err := f.svc.Submit(ctx, provenUser(), testPage, input, comment.RequestMeta{})

	verrs, ok := domain.AsValidationErrors(err)
	require.True(t, ok)
	require.Len(t, verrs, 1)
	assert.Equal(t, "parent_id", verrs[0].Field)
}

func TestSubmit_RevisionFailureRollsBackCommentInsert(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	user := provenUser()

	f.subsRepo.On("HasFullScore", ctx, user.ID).Return(true, nil).Once()
	f.commentRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	f.revisionRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("revisions table unavailable")).Once()

	created, err := f.svc.Submit(ctx, user, testPage, validInput(), comment.RequestMeta{})

	assert.Nil(t, created)
	require.Error(t, err)
	_, isValidation := domain.AsValidationErrors(err)
	assert.False(t, isValidation)
	assert.False(t, f.tx.Committed, "transaction must roll back when the revision write fails")
}

func TestThread_ViewerScoresComeFromOnePass(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	viewer := provenUser()

	c1 := domain.AnnotatedComment{Comment: domain.Comment{ID: uuid.New()}, VoteScore: 0}
	c2 := domain.AnnotatedComment{Comment: domain.Comment{ID: uuid.New()}, VoteScore: 1, RevisionCount: 1}

	f.commentRepo.On("ListByPageForViewer", ctx, testPage, viewer.ID).
		Return([]domain.AnnotatedComment{c1, c2}, nil).Once()
	f.subsRepo.On("HasFullScore", ctx, viewer.ID).Return(false, nil).Once()

	view, err := f.svc.Thread(ctx, testPage, viewer)

	require.NoError(t, err)
	require.Len(t, view.Comments, 2)
	assert.EqualValues(t, 0, view.Comments[0].VoteScore)
	assert.EqualValues(t, 1, view.Comments[1].VoteScore)
	assert.True(t, view.HasComments)
	require.NotNil(t, view.IsNewUser)
	assert.True(t, *view.IsNewUser)

	// One listing call for the whole page, never one per comment.
	f.commentRepo.AssertNumberOfCalls(t, "ListByPageForViewer", 1)
	f.commentRepo.AssertNotCalled(t, "ListByPage")
}

func TestThread_AnonymousViewer(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.commentRepo.On("ListByPage", ctx, testPage).Return([]domain.AnnotatedComment(nil), nil).Once()

	view, err := f.svc.Thread(ctx, testPage, nil)

	require.NoError(t, err)
	assert.False(t, view.HasComments)
	assert.Nil(t, view.IsNewUser)
	f.commentRepo.AssertNotCalled(t, "ListByPageForViewer")
	f.subsRepo.AssertNotCalled(t, "HasFullScore")
}
