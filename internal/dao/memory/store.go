// Package memory 提供 Repository 接口的内存实现
// 所有读写在同一把可超时的存储锁下串行执行，事务通过快照回滚
// 用于本地演示（storageConfig.driver = "memory"）和业务层测试
package memory

import (
	"context"
	"time"

	"cat_adoption_server/internal/dao/mysql/repository"
	"cat_adoption_server/internal/model"
	"cat_adoption_server/pkg/errorx"
)

// state 全部内存数据
type state struct {
	users        map[string]model.UserInfo
	shelters     map[string]model.Shelter
	cats         map[string]model.Cat
	members      map[string]model.ShelterMember // key: shelterId + "|" + userId
	applications map[string]model.Application
	messages     []model.Message // 按写入顺序
	nextID       uint
}

func newState() state {
	return state{
		users:        map[string]model.UserInfo{},
		shelters:     map[string]model.Shelter{},
		cats:         map[string]model.Cat{},
		members:      map[string]model.ShelterMember{},
		applications: map[string]model.Application{},
	}
}

// clone 深拷贝，模型均为值类型字段
func (s state) clone() state {
	cp := state{
		users:        make(map[string]model.UserInfo, len(s.users)),
		shelters:     make(map[string]model.Shelter, len(s.shelters)),
		cats:         make(map[string]model.Cat, len(s.cats)),
		members:      make(map[string]model.ShelterMember, len(s.members)),
		applications: make(map[string]model.Application, len(s.applications)),
		messages:     make([]model.Message, len(s.messages)),
		nextID:       s.nextID,
	}
	for k, v := range s.users {
		cp.users[k] = v
	}
	for k, v := range s.shelters {
		cp.shelters[k] = v
	}
	for k, v := range s.cats {
		cp.cats[k] = v
	}
	for k, v := range s.members {
		cp.members[k] = v
	}
	for k, v := range s.applications {
		cp.applications[k] = v
	}
	copy(cp.messages, s.messages)
	return cp
}

func (s *state) newID() uint {
	s.nextID++
	return s.nextID
}

func memberKey(shelterId, userId string) string {
	return shelterId + "|" + userId
}

// Store 内存存储
type Store struct {
	sem         chan struct{} // 容量为 1 的存储锁
	lockTimeout time.Duration
	now         func() time.Time
	data        state
}

// Option Store 配置项
type Option func(*Store)

// WithLockTimeout 设置等待存储锁的上限，0 表示只受 ctx 约束
func WithLockTimeout(d time.Duration) Option {
	return func(s *Store) { s.lockTimeout = d }
}

// WithClock 替换时间来源
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore 创建空的内存存储
func NewStore(opts ...Option) *Store {
	s := &Store{
		sem:  make(chan struct{}, 1),
		now:  time.Now,
		data: newState(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Repositories 返回非事务视图，每次调用单独持锁
func (s *Store) Repositories() *repository.Repositories {
	return s.repos(false)
}

func (s *Store) repos(inTx bool) *repository.Repositories {
	v := &view{store: s, inTx: inTx}
	return &repository.Repositories{
		User:        userRepo{v},
		Shelter:     shelterRepo{v},
		Cat:         catRepo{v},
		Membership:  membershipRepo{v},
		Application: applicationRepo{v},
		Message:     messageRepo{v},
		TxRunner:    v.transaction,
	}
}

// acquire 获取存储锁，超过 ctx 截止时间或 lockTimeout 返回 CodeContention
func (s *Store) acquire(ctx context.Context) error {
	if s.lockTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.lockTimeout)
		defer cancel()
	}
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return errorx.Wrap(ctx.Err(), errorx.CodeContention, "等待存储锁超时")
	}
}

func (s *Store) release() {
	<-s.sem
}

// seed 写入目录数据，供初始化与测试使用
func (s *Store) seed(fn func(st *state)) {
	_ = s.acquire(context.Background())
	defer s.release()
	fn(&s.data)
}

// PutUser 写入用户
func (s *Store) PutUser(u model.UserInfo) {
	s.seed(func(st *state) { st.users[u.Uuid] = u })
}

// PutShelter 写入救助站
func (s *Store) PutShelter(sh model.Shelter) {
	s.seed(func(st *state) { st.shelters[sh.Uuid] = sh })
}

// PutCat 写入猫咪
func (s *Store) PutCat(c model.Cat) {
	s.seed(func(st *state) { st.cats[c.Uuid] = c })
}

// PutMember 写入或覆盖成员关系
func (s *Store) PutMember(m model.ShelterMember) {
	s.seed(func(st *state) { st.members[memberKey(m.ShelterId, m.UserId)] = m })
}

// view 一次访问的上下文，事务内的访问已持有存储锁
type view struct {
	store *Store
	inTx  bool
}

// do 在存储锁下执行 fn
func (v *view) do(ctx context.Context, fn func(st *state) error) error {
	if v.inTx {
		if err := ctx.Err(); err != nil {
			return errorx.Wrap(err, errorx.CodeContention, "请求已超时")
		}
		return fn(&v.store.data)
	}
	if err := v.store.acquire(ctx); err != nil {
		return err
	}
	defer v.store.release()
	return fn(&v.store.data)
}

// transaction 快照 + 回滚
// 事务内再次调用 Transaction 时不重复加锁，失败只回滚内层的修改
func (v *view) transaction(ctx context.Context, fn func(txRepos *repository.Repositories) error) error {
	if !v.inTx {
		if err := v.store.acquire(ctx); err != nil {
			return err
		}
		defer v.store.release()
	}
	backup := v.store.data.clone()
	if err := fn(v.store.repos(true)); err != nil {
		v.store.data = backup
		return err
	}
	return nil
}

func notFound(kind, id string) error {
	return errorx.Newf(errorx.CodeNotFound, "%s不存在 uuid=%s", kind, id)
}
