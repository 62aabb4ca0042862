package memory

import (
	"context"
	"sort"
	"time"

	"github.com/samber/lo"

	"cat_adoption_server/internal/dao/mysql/repository"
	"cat_adoption_server/internal/model"
	"cat_adoption_server/pkg/enum/application/application_status_enum"
	"cat_adoption_server/pkg/enum/message/sender_type_enum"
	"cat_adoption_server/pkg/errorx"
)

type userRepo struct{ v *view }

func (r userRepo) FindByUuid(ctx context.Context, uuid string) (*model.UserInfo, error) {
	var out *model.UserInfo
	err := r.v.do(ctx, func(st *state) error {
		u, ok := st.users[uuid]
		if !ok {
			return notFound("用户", uuid)
		}
		out = &u
		return nil
	})
	return out, err
}

// LockByUuid 内存实现中存储锁已覆盖整个事务
func (r userRepo) LockByUuid(ctx context.Context, uuid string) (*model.UserInfo, error) {
	return r.FindByUuid(ctx, uuid)
}

type shelterRepo struct{ v *view }

func (r shelterRepo) FindByUuid(ctx context.Context, uuid string) (*model.Shelter, error) {
	var out *model.Shelter
	err := r.v.do(ctx, func(st *state) error {
		sh, ok := st.shelters[uuid]
		if !ok {
			return notFound("救助站", uuid)
		}
		out = &sh
		return nil
	})
	return out, err
}

type catRepo struct{ v *view }

func (r catRepo) FindByUuid(ctx context.Context, uuid string) (*model.Cat, error) {
	var out *model.Cat
	err := r.v.do(ctx, func(st *state) error {
		c, ok := st.cats[uuid]
		if !ok {
			return notFound("猫咪", uuid)
		}
		out = &c
		return nil
	})
	return out, err
}

type membershipRepo struct{ v *view }

func (r membershipRepo) FindActive(ctx context.Context, shelterId, userId string) (*model.ShelterMember, error) {
	var out *model.ShelterMember
	err := r.v.do(ctx, func(st *state) error {
		m, ok := st.members[memberKey(shelterId, userId)]
		if !ok || !m.IsActive {
			return errorx.Newf(errorx.CodeNotFound, "成员关系不存在 shelter_id=%s user_id=%s", shelterId, userId)
		}
		out = &m
		return nil
	})
	return out, err
}

func (r membershipRepo) FindActiveByShelter(ctx context.Context, shelterId string) ([]model.ShelterMember, error) {
	var out []model.ShelterMember
	err := r.v.do(ctx, func(st *state) error {
		for _, m := range st.members {
			if m.ShelterId == shelterId && m.IsActive {
				out = append(out, m)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].UserId < out[j].UserId })
		return nil
	})
	return out, err
}

func (r membershipRepo) FindActiveShelterIds(ctx context.Context, userId string) ([]string, error) {
	var out []string
	err := r.v.do(ctx, func(st *state) error {
		for _, m := range st.members {
			if m.UserId == userId && m.IsActive {
				out = append(out, m.ShelterId)
			}
		}
		sort.Strings(out)
		return nil
	})
	return out, err
}

type applicationRepo struct{ v *view }

func (r applicationRepo) Create(ctx context.Context, app *model.Application) error {
	return r.v.do(ctx, func(st *state) error {
		if _, exists := st.applications[app.Uuid]; exists {
			return errorx.Newf(errorx.CodeDBError, "申请 uuid=%s 已存在", app.Uuid)
		}
		now := r.v.store.now()
		app.ID = st.newID()
		if app.AppliedAt.IsZero() {
			app.AppliedAt = now
		}
		app.UpdatedAt = now
		st.applications[app.Uuid] = *app
		return nil
	})
}

func (r applicationRepo) FindByUuid(ctx context.Context, uuid string) (*model.Application, error) {
	var out *model.Application
	err := r.v.do(ctx, func(st *state) error {
		app, ok := st.applications[uuid]
		if !ok {
			return notFound("申请", uuid)
		}
		out = &app
		return nil
	})
	return out, err
}

func (r applicationRepo) FindByUuidForUpdate(ctx context.Context, uuid string) (*model.Application, error) {
	return r.FindByUuid(ctx, uuid)
}

func (r applicationRepo) FindActiveForUpdate(ctx context.Context, applicantId, catId string) (*model.Application, error) {
	var out *model.Application
	err := r.v.do(ctx, func(st *state) error {
		for _, app := range st.applications {
			if app.ApplicantId != applicantId || app.CatId != catId || app.Status.IsTerminal() {
				continue
			}
			if out == nil || app.AppliedAt.Before(out.AppliedAt) {
				a := app
				out = &a
			}
		}
		if out == nil {
			return errorx.Newf(errorx.CodeNotFound, "没有进行中的申请 applicant_id=%s cat_id=%s", applicantId, catId)
		}
		return nil
	})
	return out, err
}

func (r applicationRepo) CountActiveByApplicant(ctx context.Context, applicantId string) (int64, error) {
	var n int64
	err := r.v.do(ctx, func(st *state) error {
		for _, app := range st.applications {
			if app.ApplicantId == applicantId && !app.Status.IsTerminal() {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r applicationRepo) UpdateStatus(ctx context.Context, uuid string, status application_status_enum.Status) error {
	return r.update(ctx, uuid, func(app *model.Application) { app.Status = status })
}

func (r applicationRepo) Hide(ctx context.Context, uuid string, side repository.HideSide) error {
	return r.update(ctx, uuid, func(app *model.Application) {
		if side == repository.HideByShelter {
			app.IsHiddenByShelter = true
		} else {
			app.IsHiddenByApplicant = true
		}
	})
}

func (r applicationRepo) update(ctx context.Context, uuid string, mutate func(app *model.Application)) error {
	return r.v.do(ctx, func(st *state) error {
		app, ok := st.applications[uuid]
		if !ok {
			return notFound("申请", uuid)
		}
		mutate(&app)
		app.UpdatedAt = r.v.store.now()
		st.applications[uuid] = app
		return nil
	})
}

func (r applicationRepo) FindVisible(ctx context.Context, userId string, shelterIds []string) ([]model.Application, error) {
	shelterSet := make(map[string]struct{}, len(shelterIds))
	for _, id := range shelterIds {
		shelterSet[id] = struct{}{}
	}
	var out []model.Application
	err := r.v.do(ctx, func(st *state) error {
		for _, app := range st.applications {
			_, inShelter := shelterSet[app.ShelterId]
			if (app.ApplicantId == userId && !app.IsHiddenByApplicant) || (inShelter && !app.IsHiddenByShelter) {
				out = append(out, app)
			}
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].AppliedAt.Equal(out[j].AppliedAt) {
				return out[i].ID > out[j].ID
			}
			return out[i].AppliedAt.After(out[j].AppliedAt)
		})
		return nil
	})
	return out, err
}

type messageRepo struct{ v *view }

func (r messageRepo) Create(ctx context.Context, message *model.Message) error {
	return r.v.do(ctx, func(st *state) error {
		message.ID = st.newID()
		if message.CreatedAt.IsZero() {
			message.CreatedAt = r.v.store.now()
		}
		st.messages = append(st.messages, *message)
		return nil
	})
}

func (r messageRepo) FindByApplication(ctx context.Context, applicationId string) ([]model.Message, error) {
	var out []model.Message
	err := r.v.do(ctx, func(st *state) error {
		for _, m := range st.messages {
			if m.ApplicationId == applicationId {
				out = append(out, m)
			}
		}
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].CreatedAt.Equal(out[j].CreatedAt) {
				return out[i].ID < out[j].ID
			}
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
		return nil
	})
	return out, err
}

func (r messageRepo) CountUnread(ctx context.Context, applicationId string, senderTypes []sender_type_enum.SenderType) (int64, error) {
	var n int64
	err := r.v.do(ctx, func(st *state) error {
		for _, m := range st.messages {
			if m.ApplicationId == applicationId && !m.ReadAt.Valid && lo.Contains(senderTypes, m.SenderType) {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r messageRepo) CountUnreadByApplications(ctx context.Context, applicationIds []string, senderTypes []sender_type_enum.SenderType) (map[string]int64, error) {
	counts := make(map[string]int64, len(applicationIds))
	err := r.v.do(ctx, func(st *state) error {
		for _, m := range st.messages {
			if !m.ReadAt.Valid && lo.Contains(applicationIds, m.ApplicationId) && lo.Contains(senderTypes, m.SenderType) {
				counts[m.ApplicationId]++
			}
		}
		return nil
	})
	return counts, err
}

func (r messageRepo) MarkRead(ctx context.Context, applicationId string, senderTypes []sender_type_enum.SenderType, readAt time.Time) (int64, error) {
	var n int64
	err := r.v.do(ctx, func(st *state) error {
		for i := range st.messages {
			m := &st.messages[i]
			if m.ApplicationId == applicationId && !m.ReadAt.Valid && lo.Contains(senderTypes, m.SenderType) {
				m.ReadAt.Time = readAt
				m.ReadAt.Valid = true
				n++
			}
		}
		return nil
	})
	return n, err
}
