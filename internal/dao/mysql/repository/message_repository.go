package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"cat_adoption_server/internal/model"
	"cat_adoption_server/pkg/enum/message/sender_type_enum"
)

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建消息 Repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create 创建消息
func (r *messageRepository) Create(ctx context.Context, message *model.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return wrapDBErrorf(err, "创建消息 application_id=%s", message.ApplicationId)
	}
	return nil
}

// FindByApplication 按申请查找消息
func (r *messageRepository) FindByApplication(ctx context.Context, applicationId string) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationId).
		Order("created_at ASC").Order("id ASC").
		Find(&messages).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询消息 application_id=%s", applicationId)
	}
	return messages, nil
}

// CountUnread 统计未读消息
func (r *messageRepository) CountUnread(ctx context.Context, applicationId string, senderTypes []sender_type_enum.SenderType) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("application_id = ? AND read_at IS NULL AND sender_type IN ?", applicationId, senderTypes).
		Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "统计未读消息 application_id=%s", applicationId)
	}
	return count, nil
}

// CountUnreadByApplications 按申请分组统计未读消息
func (r *messageRepository) CountUnreadByApplications(ctx context.Context, applicationIds []string, senderTypes []sender_type_enum.SenderType) (map[string]int64, error) {
	counts := make(map[string]int64, len(applicationIds))
	if len(applicationIds) == 0 || len(senderTypes) == 0 {
		return counts, nil
	}
	var rows []struct {
		ApplicationId string
		Unread        int64
	}
	if err := r.db.WithContext(ctx).Model(&model.Message{}).
		Select("application_id, COUNT(*) AS unread").
		Where("application_id IN ? AND read_at IS NULL AND sender_type IN ?", applicationIds, senderTypes).
		Group("application_id").
		Scan(&rows).Error; err != nil {
		return nil, wrapDBErrorf(err, "批量统计未读消息 count=%d", len(applicationIds))
	}
	for _, row := range rows {
		counts[row.ApplicationId] = row.Unread
	}
	return counts, nil
}

// MarkRead 一条 UPDATE 完成批量已读
func (r *messageRepository) MarkRead(ctx context.Context, applicationId string, senderTypes []sender_type_enum.SenderType, readAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("application_id = ? AND read_at IS NULL AND sender_type IN ?", applicationId, senderTypes).
		Update("read_at", readAt)
	if res.Error != nil {
		return 0, wrapDBErrorf(res.Error, "标记已读 application_id=%s", applicationId)
	}
	return res.RowsAffected, nil
}
