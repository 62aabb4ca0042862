// Package message 申请内沟通消息：读写权限、发送方身份判定与已读跟踪
package message

import (
	"context"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"cat_adoption_server/internal/dao/mysql/repository"
	"cat_adoption_server/internal/dto/request"
	"cat_adoption_server/internal/dto/respond"
	"cat_adoption_server/internal/infrastructure/metrics"
	"cat_adoption_server/internal/infrastructure/notify"
	"cat_adoption_server/internal/model"
	"cat_adoption_server/internal/service/membership"
	"cat_adoption_server/pkg/constants"
	"cat_adoption_server/pkg/enum/message/sender_type_enum"
	"cat_adoption_server/pkg/enum/notify/notify_event_enum"
	"cat_adoption_server/pkg/errorx"
	"cat_adoption_server/pkg/util/snowflake"
)

const (
	// MaxContentLength 消息内容上限（按字符计）
	MaxContentLength = constants.MESSAGE_MAX_LENGTH
	previewLength    = 50
	timeLayout       = "2006-01-02 15:04:05"
)

// messageService 消息业务逻辑实现
type messageService struct {
	repos     *repository.Repositories
	publisher notify.Publisher
	now       func() time.Time
}

// NewMessageService 构造函数
func NewMessageService(repos *repository.Repositories, publisher notify.Publisher) *messageService {
	return &messageService{repos: repos, publisher: publisher, now: time.Now}
}

// ClassifySender 发送方身份：平台管理员 > 救助站成员 > 申请人
func ClassifySender(standing membership.Standing) sender_type_enum.SenderType {
	switch {
	case standing.IsPlatformAdmin:
		return sender_type_enum.ADMIN
	case standing.Member.IsMember:
		return sender_type_enum.SHELTER
	}
	return sender_type_enum.USER
}

// List 申请下的全部消息，按发送时间正序
func (m *messageService) List(ctx context.Context, actor model.Actor, applicationId string) ([]respond.MessageRespond, error) {
	if applicationId == "" {
		return nil, errorx.New(errorx.CodeMissingScope, "查询消息必须指定 application_id")
	}
	app, standing, err := m.standing(ctx, actor, applicationId)
	if err != nil {
		return nil, err
	}
	if !standing.CanRead() {
		return nil, errorx.ErrNotFound
	}

	messages, err := m.repos.Message.FindByApplication(ctx, app.Uuid)
	if err != nil {
		return nil, err
	}
	rspList := make([]respond.MessageRespond, 0, len(messages))
	for i := range messages {
		rspList = append(rspList, toMessageRespond(&messages[i]))
	}
	return rspList, nil
}

// Send 发送消息，救助站员工只能查看
func (m *messageService) Send(ctx context.Context, actor model.Actor, req request.SendMessageRequest) (*respond.MessageRespond, error) {
	if !actor.IsAuthenticated {
		return nil, errorx.ErrUnauthorized
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "消息内容不能为空")
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return nil, errorx.Newf(errorx.CodeInvalidParam, "消息内容不能超过 %d 个字符", MaxContentLength)
	}
	if req.ApplicationId == "" {
		return nil, errorx.ErrInvalidParam
	}

	app, standing, err := m.standing(ctx, actor, req.ApplicationId)
	if err != nil {
		return nil, err
	}
	if !standing.HasAny() {
		return nil, errorx.ErrNotFound
	}
	if !standing.CanSend() {
		return nil, errorx.New(errorx.CodeForbidden, "救助站员工只能查看消息，不能发送")
	}

	message := &model.Message{
		Uuid:          snowflake.GenerateID(),
		ApplicationId: app.Uuid,
		SenderId:      actor.UserId,
		SenderType:    ClassifySender(standing),
		Content:       content,
		CreatedAt:     m.now(),
	}
	if err := m.repos.Message.Create(ctx, message); err != nil {
		return nil, err
	}
	metrics.MessagesSent.WithLabelValues(string(message.SenderType)).Inc()

	if m.publisher != nil {
		m.publisher.Publish(notify.Event{
			Type:          notify_event_enum.MESSAGE_SENT,
			ApplicationId: app.Uuid,
			ActorId:       actor.UserId,
			Recipients:    m.recipients(ctx, app, message),
			MessageId:     message.Uuid,
			SenderType:    string(message.SenderType),
			Preview:       notify.PreviewOf(content, previewLength),
			OccurredAt:    message.CreatedAt,
		})
	}

	rsp := toMessageRespond(message)
	return &rsp, nil
}

// MarkRead 把对方发来的未读消息全部标记为已读，返回标记数量
// 与申请没有关系的调用者得到 0，不返回错误
func (m *messageService) MarkRead(ctx context.Context, actor model.Actor, applicationId string) (*respond.MarkReadRespond, error) {
	if applicationId == "" {
		return nil, errorx.ErrInvalidParam
	}
	senderTypes, err := m.readableSenderTypes(ctx, actor, applicationId)
	if err != nil {
		return nil, err
	}
	if len(senderTypes) == 0 {
		return &respond.MarkReadRespond{Count: 0}, nil
	}
	count, err := m.repos.Message.MarkRead(ctx, applicationId, senderTypes, m.now())
	if err != nil {
		return nil, err
	}
	return &respond.MarkReadRespond{Count: count}, nil
}

// UnreadCount 调用者在该申请下的未读数
func (m *messageService) UnreadCount(ctx context.Context, actor model.Actor, applicationId string) (*respond.UnreadCountRespond, error) {
	if applicationId == "" {
		return nil, errorx.ErrInvalidParam
	}
	senderTypes, err := m.readableSenderTypes(ctx, actor, applicationId)
	if err != nil {
		return nil, err
	}
	if len(senderTypes) == 0 {
		return &respond.UnreadCountRespond{UnreadCount: 0}, nil
	}
	count, err := m.repos.Message.CountUnread(ctx, applicationId, senderTypes)
	if err != nil {
		return nil, err
	}
	return &respond.UnreadCountRespond{UnreadCount: count}, nil
}

// readableSenderTypes 申请不存在或没有身份时返回空，不暴露申请是否存在
func (m *messageService) readableSenderTypes(ctx context.Context, actor model.Actor, applicationId string) ([]sender_type_enum.SenderType, error) {
	if !actor.IsAuthenticated {
		return nil, nil
	}
	_, standing, err := m.standing(ctx, actor, applicationId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return standing.UnreadSenderTypes(), nil
}

func (m *messageService) standing(ctx context.Context, actor model.Actor, applicationId string) (*model.Application, membership.Standing, error) {
	app, err := m.repos.Application.FindByUuid(ctx, applicationId)
	if err != nil {
		return nil, membership.Standing{}, err
	}
	standing, err := membership.StandingOn(ctx, m.repos.Membership, actor, app)
	if err != nil {
		return nil, membership.Standing{}, err
	}
	return app, standing, nil
}

// recipients 申请人发的消息通知救助站成员，救助站发的通知申请人，平台发的通知双方
func (m *messageService) recipients(ctx context.Context, app *model.Application, message *model.Message) []string {
	var ids []string
	if message.SenderType != sender_type_enum.USER {
		ids = append(ids, app.ApplicantId)
	}
	if message.SenderType != sender_type_enum.SHELTER {
		members, err := m.repos.Membership.FindActiveByShelter(ctx, app.ShelterId)
		if err != nil {
			zap.L().Warn("查询救助站成员失败", zap.String("shelter_id", app.ShelterId), zap.Error(err))
		}
		for _, member := range members {
			ids = append(ids, member.UserId)
		}
	}
	return lo.Without(lo.Uniq(ids), message.SenderId)
}

func toMessageRespond(message *model.Message) respond.MessageRespond {
	return respond.MessageRespond{
		Uuid:          strconv.FormatInt(message.Uuid, 10),
		ApplicationId: message.ApplicationId,
		SenderId:      message.SenderId,
		SenderType:    string(message.SenderType),
		Content:       message.Content,
		IsRead:        message.IsRead(),
		CreatedAt:     message.CreatedAt.Format(timeLayout),
	}
}
