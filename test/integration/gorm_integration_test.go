package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"ai-search-be/internal/entity"
	"ai-search-be/internal/model"
	"ai-search-be/internal/repository/specification"
	"ai-search-be/internal/repository/unitofwork"
	"ai-search-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, false)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Conversation{}, &model.Message{}))
	return db
}

func TestGormConnection(t *testing.T) {
	db := openDB(t)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())

	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(context.Background())
	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.ConversationRepository())
	assert.NotNil(t, uow.MessageRepository())
}

func TestConversationLifecycle(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)

	user := entity.NewUser("it-" + uuid.NewString())
	require.NoError(t, uow.UserRepository().Create(ctx, user))
	t.Cleanup(func() {
		db.Unscoped().Where("user_id = ?", user.Id).Delete(&model.Message{})
		db.Unscoped().Where("user_id = ?", user.Id).Delete(&model.Conversation{})
		db.Unscoped().Where("id = ?", user.Id).Delete(&model.User{})
	})

	found, err := uow.UserRepository().FindOne(ctx, specification.ByHandle{Handle: user.Handle})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.Id, found.Id)

	conv := &entity.Conversation{
		Id:        uuid.New(),
		UserId:    user.Id,
		Title:     "통합 테스트 대화",
		IsActive:  true,
		CreatedAt: time.Now(),
	}

	t.Run("Create conversation with messages in one transaction", func(t *testing.T) {
		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.ConversationRepository().Create(ctx, conv))

		score := 82
		now := time.Now()
		require.NoError(t, uow.MessageRepository().Create(ctx, &entity.Message{
			Id: uuid.New(), ConversationId: conv.Id, UserId: user.Id,
			Content: "질문", MessageType: entity.MessageTypeUser, CreatedAt: now,
		}))
		require.NoError(t, uow.MessageRepository().Create(ctx, &entity.Message{
			Id: uuid.New(), ConversationId: conv.Id, UserId: user.Id,
			Content: "답변", MessageType: entity.MessageTypeAssistant,
			Citations:    []entity.MessageCitation{{Title: "Go", URL: "https://go.dev", RelevanceScore: 77.5}},
			QualityScore: &score, CreatedAt: now.Add(time.Millisecond),
		}))
		require.NoError(t, uow.Commit())

		messages, err := uow.MessageRepository().FindAll(ctx,
			specification.ByConversationID{ConversationID: conv.Id},
			specification.Chronological{},
		)
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, entity.MessageTypeUser, messages[0].MessageType)
		assert.Equal(t, "https://go.dev", messages[1].Citations[0].URL)
		assert.Equal(t, 82, *messages[1].QualityScore)
	})

	t.Run("Title search and deactivate", func(t *testing.T) {
		list, err := uow.ConversationRepository().FindAll(ctx,
			specification.UserOwnedBy{UserID: user.Id},
			specification.TitleContains{Term: "테스트"},
		)
		require.NoError(t, err)
		assert.Len(t, list, 1)

		require.NoError(t, uow.ConversationRepository().DeactivateAllByUserId(ctx, user.Id))
		active, err := uow.ConversationRepository().FindOne(ctx,
			specification.UserOwnedBy{UserID: user.Id},
			specification.IsActive{},
		)
		require.NoError(t, err)
		assert.Nil(t, active)
	})

	t.Run("Soft delete hides conversation", func(t *testing.T) {
		require.NoError(t, uow.ConversationRepository().Delete(ctx, conv.Id))
		got, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conv.Id})
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
