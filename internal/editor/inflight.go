package editor

import "sort"

// Operation 正在进行的远端变更
type Operation string

const (
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// entityKey 远端实体标识
type entityKey struct {
	Subject     bool
	TimetableID string
	SubjectID   string
}

func timetableKey(id string) entityKey { return entityKey{TimetableID: id} }

func subjectKey(timetableID, subjectID string) entityKey {
	return entityKey{Subject: true, TimetableID: timetableID, SubjectID: subjectID}
}

// InFlight 实体 → 进行中的操作；同一实体同一时刻至多一个远端变更
// 非并发安全，由 Editor 的锁保护
type InFlight struct {
	ops map[entityKey]Operation
}

// NewInFlight 创建空集合
func NewInFlight() *InFlight {
	return &InFlight{ops: make(map[entityKey]Operation)}
}

// Begin 登记操作；该实体已有操作进行中时返回 false
func (f *InFlight) Begin(key entityKey, op Operation) bool {
	if _, busy := f.ops[key]; busy {
		return false
	}
	f.ops[key] = op
	return true
}

// End 移除登记
func (f *InFlight) End(key entityKey) {
	delete(f.ops, key)
}

// Has 实体是否有操作进行中
func (f *InFlight) Has(key entityKey) bool {
	_, ok := f.ops[key]
	return ok
}

// Len 进行中的操作数
func (f *InFlight) Len() int {
	return len(f.ops)
}

// deletingTimetables 正在删除的时间表标识（有序）
func (f *InFlight) deletingTimetables() []string {
	ids := make([]string, 0)
	for k, op := range f.ops {
		if op == OpDelete && !k.Subject {
			ids = append(ids, k.TimetableID)
		}
	}
	sort.Strings(ids)
	return ids
}

// deletingSubjects 正在删除的科目（有序）
func (f *InFlight) deletingSubjects() []SubjectRef {
	refs := make([]SubjectRef, 0)
	for k, op := range f.ops {
		if op == OpDelete && k.Subject {
			refs = append(refs, SubjectRef{TimetableID: k.TimetableID, SubjectID: k.SubjectID})
		}
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].TimetableID != refs[j].TimetableID {
			return refs[i].TimetableID < refs[j].TimetableID
		}
		return refs[i].SubjectID < refs[j].SubjectID
	})
	return refs
}
