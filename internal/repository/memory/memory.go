// Package memory 内存存储，database.driver=memory 时使用，进程退出数据即丢失
package memory

import (
	"sync"
	"time"

	"github.com/qs3c/castquest_server/internal/repository"
)

type store struct {
	mu sync.RWMutex

	users      map[string]userRow
	quests     map[string]questRow // key: userID|questType
	castLimits map[string]castRow  // key: userID|date
	badges     map[string]badgeRow // key: userID
	drafts     map[string]draftRow
	feedback   []feedbackRow

	seq uint64
	now func() time.Time
}

// NewRepositories 创建共用同一份内存数据的存储集合
func NewRepositories() *repository.Repositories {
	s := &store{
		users:      make(map[string]userRow),
		quests:     make(map[string]questRow),
		castLimits: make(map[string]castRow),
		badges:     make(map[string]badgeRow),
		drafts:     make(map[string]draftRow),
		now:        time.Now,
	}
	return &repository.Repositories{
		Users:      &UserRepository{s: s},
		Quests:     &QuestRepository{s: s},
		CastLimits: &CastLimitRepository{s: s},
		Badges:     &BadgeRepository{s: s},
		Drafts:     &DraftRepository{s: s},
		Feedback:   &FeedbackRepository{s: s},
	}
}

// nextSeq 插入顺序，调用方持有写锁
func (s *store) nextSeq() uint64 {
	s.seq++
	return s.seq
}

func key(a, b string) string {
	return a + "|" + b
}
