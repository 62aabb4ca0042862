// Package application 领养申请的创建、状态流转、查看与隐藏
// 所有写操作在 Repositories.Transaction 内先加行锁再读写，通知在事务提交之后发出
package application

import (
	"context"
	"time"

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
	"cat_adoption_server/pkg/enum/application/application_status_enum"
	"cat_adoption_server/pkg/enum/message/sender_type_enum"
	"cat_adoption_server/pkg/enum/notify/notify_event_enum"
	"cat_adoption_server/pkg/errorx"
	"cat_adoption_server/pkg/util/random"
)

const timeLayout = "2006-01-02 15:04:05"

// DefaultMaxActive 每个申请人同时进行中的申请上限
const DefaultMaxActive = constants.MAX_ACTIVE_APPLICATIONS

// applicationService 领养申请业务逻辑实现
type applicationService struct {
	repos     *repository.Repositories
	publisher notify.Publisher
	maxActive int
}

// NewApplicationService 构造函数，maxActive<=0 时使用默认上限
func NewApplicationService(repos *repository.Repositories, publisher notify.Publisher, maxActive int) *applicationService {
	if maxActive <= 0 {
		maxActive = DefaultMaxActive
	}
	return &applicationService{repos: repos, publisher: publisher, maxActive: maxActive}
}

// Create 提交领养申请
// 同一申请人对同一只猫已有进行中的申请时直接返回该申请，created=false
func (s *applicationService) Create(ctx context.Context, actor model.Actor, req request.CreateApplicationRequest) (*respond.CreateApplicationRespond, error) {
	if !actor.IsAuthenticated {
		return nil, errorx.ErrUnauthorized
	}

	cat, err := s.repos.Cat.FindByUuid(ctx, req.CatId)
	if err != nil {
		return nil, err
	}
	shelter, err := s.repos.Shelter.FindByUuid(ctx, cat.ShelterId)
	if err != nil {
		return nil, err
	}
	if !shelter.IsApproved() {
		metrics.ApplicationsCreated.WithLabelValues("shelter_not_approved").Inc()
		return nil, errorx.New(errorx.CodeShelterNotApproved, "该救助站正在审核中，暂时不能接收领养申请")
	}

	var (
		result  *model.Application
		created bool
	)
	err = s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		// 锁住申请人行，同一申请人的创建请求在此串行
		if _, err := tx.User.LockByUuid(ctx, actor.UserId); err != nil {
			if errorx.IsNotFound(err) {
				return errorx.Wrap(err, errorx.CodeUserNotExist, "用户不存在")
			}
			return err
		}

		existing, err := tx.Application.FindActiveForUpdate(ctx, actor.UserId, cat.Uuid)
		if err == nil {
			result = existing
			return nil
		}
		if !errorx.IsNotFound(err) {
			return err
		}

		active, err := tx.Application.CountActiveByApplicant(ctx, actor.UserId)
		if err != nil {
			return err
		}
		if active >= int64(s.maxActive) {
			return errorx.Newf(errorx.CodeTooManyApplications, "进行中的申请最多 %d 个，当前已有 %d 个", s.maxActive, active).
				WithData(respond.ApplicationLimitData{Limit: s.maxActive, Active: active})
		}

		app := newApplication(actor.UserId, cat, req)
		if err := tx.Application.Create(ctx, app); err != nil {
			return err
		}
		result = app
		created = true
		return nil
	})
	if err != nil {
		s.observe("create", err)
		if errorx.HasCode(err, errorx.CodeTooManyApplications) {
			metrics.ApplicationsCreated.WithLabelValues("limit_reached").Inc()
		}
		return nil, err
	}

	if created {
		metrics.ApplicationsCreated.WithLabelValues("created").Inc()
		zap.L().Info("领养申请已创建",
			zap.String("application_id", result.Uuid),
			zap.String("applicant_id", result.ApplicantId),
			zap.String("shelter_id", result.ShelterId))
		s.publish(notify.Event{
			Type:          notify_event_enum.APPLICATION_CREATED,
			ApplicationId: result.Uuid,
			ActorId:       actor.UserId,
			Recipients:    s.shelterRecipients(ctx, result.ShelterId, actor.UserId),
			ToStatus:      result.Status.String(),
		})
	} else {
		metrics.ApplicationsCreated.WithLabelValues("existing").Inc()
	}

	unread := int64(0)
	if !created {
		unread = s.countUnread(ctx, result.Uuid, membership.Standing{IsApplicant: true})
	}
	return &respond.CreateApplicationRespond{
		Application: toApplicationRespond(result, false, unread),
		Created:     created,
	}, nil
}

// UpdateStatus 救助站成员变更申请状态，任意角色的有效成员都可以操作
func (s *applicationService) UpdateStatus(ctx context.Context, actor model.Actor, req request.UpdateStatusRequest) (*respond.StatusUpdateRespond, error) {
	if !actor.IsAuthenticated {
		return nil, errorx.ErrUnauthorized
	}
	requested := application_status_enum.Status(req.Status)
	if !requested.IsValid() {
		return nil, errorx.Newf(errorx.CodeInvalidParam, "未知的申请状态: %s", req.Status)
	}

	var (
		app      *model.Application
		previous application_status_enum.Status
		changed  bool
	)
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		var err error
		app, err = tx.Application.FindByUuidForUpdate(ctx, req.ApplicationId)
		if err != nil {
			return err
		}
		standing, err := membership.StandingOn(ctx, tx.Membership, actor, app)
		if err != nil {
			return err
		}
		if !standing.HasAny() {
			return errorx.ErrNotFound
		}
		if !standing.Member.IsMember {
			return errorx.New(errorx.CodeForbidden, "只有救助站成员可以变更申请状态")
		}

		previous = app.Status
		next, ok, err := Apply(app.Status, StatusRequested{Status: requested})
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := tx.Application.UpdateStatus(ctx, app.Uuid, next); err != nil {
			return err
		}
		app.Status = next
		changed = true
		return nil
	})
	if err != nil {
		s.observe("update_status", err)
		return nil, err
	}

	if changed {
		s.statusChanged(ctx, actor, app, previous, "update")
	}
	return &respond.StatusUpdateRespond{
		ApplicationId:  app.Uuid,
		PreviousStatus: previous.String(),
		Status:         app.Status.String(),
		Changed:        changed,
		AllowedActions: AllowedActions(app.Status),
	}, nil
}

// GetDetail 查看申请详情
// 救助站成员第一次查看 pending 申请时自动推进到 reviewing
func (s *applicationService) GetDetail(ctx context.Context, actor model.Actor, applicationId string) (*respond.ApplicationRespond, error) {
	if applicationId == "" {
		return nil, errorx.ErrInvalidParam
	}
	app, err := s.repos.Application.FindByUuid(ctx, applicationId)
	if err != nil {
		return nil, err
	}
	standing, err := membership.StandingOn(ctx, s.repos.Membership, actor, app)
	if err != nil {
		return nil, err
	}
	if !standing.CanRead() || hiddenFrom(app, standing.Side()) {
		return nil, errorx.ErrNotFound
	}

	if standing.Member.IsMember && app.Status == application_status_enum.PENDING {
		app, err = s.advanceOnView(ctx, actor, applicationId)
		if err != nil {
			return nil, err
		}
	}

	view := toApplicationRespond(app, standing.Member.IsMember, s.countUnread(ctx, app.Uuid, standing))
	return &view, nil
}

// hiddenFrom 申请已被调用者所在一方隐藏，平台管理员没有自己的一方，总是可见
func hiddenFrom(app *model.Application, side repository.HideSide) bool {
	switch side {
	case repository.HideByApplicant:
		return app.IsHiddenByApplicant
	case repository.HideByShelter:
		return app.IsHiddenByShelter
	}
	return false
}

// advanceOnView 在锁内重新读取并应用 ViewedByShelter，并发查看时只推进一次
func (s *applicationService) advanceOnView(ctx context.Context, actor model.Actor, applicationId string) (*model.Application, error) {
	var (
		app     *model.Application
		changed bool
	)
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		var err error
		app, err = tx.Application.FindByUuidForUpdate(ctx, applicationId)
		if err != nil {
			return err
		}
		next, ok, err := Apply(app.Status, ViewedByShelter{})
		if err != nil || !ok {
			return err
		}
		if err := tx.Application.UpdateStatus(ctx, app.Uuid, next); err != nil {
			return err
		}
		app.Status = next
		changed = true
		return nil
	})
	if err != nil {
		s.observe("first_view", err)
		return nil, err
	}
	if changed {
		s.statusChanged(ctx, actor, app, application_status_enum.PENDING, "first_view")
	}
	return app, nil
}

// Archive 在自己一侧隐藏已结束的申请，另一方不受影响
func (s *applicationService) Archive(ctx context.Context, actor model.Actor, applicationId string) error {
	if !actor.IsAuthenticated {
		return errorx.ErrUnauthorized
	}
	if applicationId == "" {
		return errorx.ErrInvalidParam
	}
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		app, err := tx.Application.FindByUuidForUpdate(ctx, applicationId)
		if err != nil {
			return err
		}
		standing, err := membership.StandingOn(ctx, tx.Membership, actor, app)
		if err != nil {
			return err
		}
		if !standing.HasAny() {
			return errorx.ErrNotFound
		}
		side := standing.Side()
		if side == 0 {
			return errorx.New(errorx.CodeForbidden, "平台管理员不能隐藏申请")
		}
		if !app.Status.IsTerminal() {
			return errorx.New(errorx.CodeNotTerminal, "申请尚未结束，不能隐藏")
		}
		return tx.Application.Hide(ctx, app.Uuid, side)
	})
	if err != nil {
		s.observe("archive", err)
		return err
	}
	return nil
}

// List 调用者作为申请人或救助站成员可见的申请，按申请时间倒序
func (s *applicationService) List(ctx context.Context, actor model.Actor) ([]respond.ApplicationRespond, error) {
	if !actor.IsAuthenticated {
		return nil, errorx.ErrUnauthorized
	}
	shelterIds, err := s.repos.Membership.FindActiveShelterIds(ctx, actor.UserId)
	if err != nil {
		return nil, err
	}
	apps, err := s.repos.Application.FindVisible(ctx, actor.UserId, shelterIds)
	if err != nil {
		return nil, err
	}

	standings := make([]membership.Standing, len(apps))
	for i := range apps {
		standings[i] = membership.Standing{
			IsApplicant:     apps[i].ApplicantId == actor.UserId,
			Member:          membership.Membership{IsMember: lo.Contains(shelterIds, apps[i].ShelterId)},
			IsPlatformAdmin: actor.IsPlatformAdmin,
		}
	}
	unread := s.countUnreadBatch(ctx, apps, standings)

	rspList := make([]respond.ApplicationRespond, 0, len(apps))
	for i := range apps {
		rspList = append(rspList, toApplicationRespond(&apps[i], standings[i].Member.IsMember, unread[apps[i].Uuid]))
	}
	return rspList, nil
}

// countUnreadBatch 按未读来源分组，每组一次查询
// 申请人一侧与救助站一侧各至多一次，失败时该组记为 0
func (s *applicationService) countUnreadBatch(ctx context.Context, apps []model.Application, standings []membership.Standing) map[string]int64 {
	groups := make(map[sender_type_enum.SenderType][]string)
	senderTypesOf := make(map[sender_type_enum.SenderType][]sender_type_enum.SenderType)
	for i := range apps {
		senderTypes := standings[i].UnreadSenderTypes()
		if len(senderTypes) == 0 {
			continue
		}
		key := senderTypes[0]
		groups[key] = append(groups[key], apps[i].Uuid)
		senderTypesOf[key] = senderTypes
	}

	unread := make(map[string]int64, len(apps))
	for key, ids := range groups {
		counts, err := s.repos.Message.CountUnreadByApplications(ctx, ids, senderTypesOf[key])
		if err != nil {
			zap.L().Warn("批量统计未读消息失败", zap.Int("applications", len(ids)), zap.Error(err))
			continue
		}
		for id, n := range counts {
			unread[id] = n
		}
	}
	return unread
}

// statusChanged 记录指标并通知申请人
func (s *applicationService) statusChanged(ctx context.Context, actor model.Actor, app *model.Application, from application_status_enum.Status, trigger string) {
	metrics.StatusTransitions.WithLabelValues(from.String(), app.Status.String(), trigger).Inc()
	zap.L().Info("申请状态变更",
		zap.String("application_id", app.Uuid),
		zap.String("from", from.String()),
		zap.String("to", app.Status.String()),
		zap.String("trigger", trigger),
		zap.String("operator", actor.UserId))
	s.publish(notify.Event{
		Type:          notify_event_enum.APPLICATION_STATUS_CHANGED,
		ApplicationId: app.Uuid,
		ActorId:       actor.UserId,
		Recipients:    []string{app.ApplicantId},
		FromStatus:    from.String(),
		ToStatus:      app.Status.String(),
	})
}

// shelterRecipients 救助站全部有效成员，查询失败只记录日志
func (s *applicationService) shelterRecipients(ctx context.Context, shelterId, exclude string) []string {
	members, err := s.repos.Membership.FindActiveByShelter(ctx, shelterId)
	if err != nil {
		zap.L().Warn("查询救助站成员失败，通知将没有收件人", zap.String("shelter_id", shelterId), zap.Error(err))
		return nil
	}
	ids := lo.Map(members, func(m model.ShelterMember, _ int) string { return m.UserId })
	return lo.Without(lo.Uniq(ids), exclude)
}

func (s *applicationService) publish(event notify.Event) {
	if s.publisher == nil {
		return
	}
	event.OccurredAt = time.Now()
	s.publisher.Publish(event)
}

// countUnread 未读数只用于展示，失败时记录日志并返回 0
func (s *applicationService) countUnread(ctx context.Context, applicationId string, standing membership.Standing) int64 {
	senderTypes := standing.UnreadSenderTypes()
	if len(senderTypes) == 0 {
		return 0
	}
	count, err := s.repos.Message.CountUnread(ctx, applicationId, senderTypes)
	if err != nil {
		zap.L().Warn("统计未读消息失败", zap.String("application_id", applicationId), zap.Error(err))
		return 0
	}
	return count
}

// observe 锁竞争单独计数，便于观察热点申请
func (s *applicationService) observe(operation string, err error) {
	if errorx.HasCode(err, errorx.CodeContention) {
		metrics.LockContention.WithLabelValues(operation).Inc()
		zap.L().Warn("申请锁竞争", zap.String("operation", operation), zap.Error(err))
	}
}

func newApplication(applicantId string, cat *model.Cat, req request.CreateApplicationRequest) *model.Application {
	return &model.Application{
		Uuid:                  "A" + random.GetNowAndLenRandomString(11),
		ApplicantId:           applicantId,
		CatId:                 cat.Uuid,
		ShelterId:             cat.ShelterId,
		Status:                application_status_enum.PENDING,
		FullName:              req.FullName,
		Age:                   req.Age,
		Occupation:            req.Occupation,
		PhoneNumber:           req.PhoneNumber,
		Address:               req.Address,
		HousingType:           req.HousingType,
		HasGarden:             req.HasGarden,
		FamilyMembers:         req.FamilyMembers,
		HasOtherPets:          req.HasOtherPets,
		OtherPetsDescription:  req.OtherPetsDescription,
		HasExperience:         req.HasExperience,
		ExperienceDescription: req.ExperienceDescription,
		Motivation:            req.Motivation,
		AdditionalNotes:       req.AdditionalNotes,
	}
}

// toApplicationRespond withContact=true 时附带申请人联系方式（救助站视角）
func toApplicationRespond(app *model.Application, withContact bool, unread int64) respond.ApplicationRespond {
	rsp := respond.ApplicationRespond{
		Uuid:                  app.Uuid,
		ApplicantId:           app.ApplicantId,
		CatId:                 app.CatId,
		ShelterId:             app.ShelterId,
		Status:                app.Status.String(),
		AllowedActions:        AllowedActions(app.Status),
		HousingType:           app.HousingType,
		HasGarden:             app.HasGarden,
		FamilyMembers:         app.FamilyMembers,
		HasOtherPets:          app.HasOtherPets,
		OtherPetsDescription:  app.OtherPetsDescription,
		HasExperience:         app.HasExperience,
		ExperienceDescription: app.ExperienceDescription,
		Motivation:            app.Motivation,
		AdditionalNotes:       app.AdditionalNotes,
		UnreadCount:           unread,
		AppliedAt:             app.AppliedAt.Format(timeLayout),
		UpdatedAt:             app.UpdatedAt.Format(timeLayout),
	}
	if withContact {
		rsp.Contact = &respond.ApplicantContact{
			FullName:    app.FullName,
			Age:         app.Age,
			Occupation:  app.Occupation,
			PhoneNumber: app.PhoneNumber,
			Address:     app.Address,
		}
	}
	return rsp
}
