package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// BestRecord 某一模式下的最佳成绩
// 时间和射击数分别记录，两者可能来自不同的对局
type BestRecord struct {
	FastestSeconds float64 `yaml:"fastestSeconds"` // 最短通关时间（秒），0 表示没有记录
	FewestShots    int     `yaml:"fewestShots"`    // 最少射击数，0 表示没有记录
	Runs           int     `yaml:"runs"`           // 通关次数
}

// HasRecord 是否已有通关记录
func (r BestRecord) HasRecord() bool {
	return r.Runs > 0
}

// RecordManager 最佳成绩管理器
// 普通模式和解锁额外内容后的模式分开记录（亡命徒数量不同）
type RecordManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存记录）
	records      map[string]BestRecord
}

// 存储路径常量
const (
	recordsObject = "records"

	// RecordModeStandard 普通模式
	RecordModeStandard = "standard"
	// RecordModeExtra 解锁额外内容后的模式
	RecordModeExtra = "extra"
)

// NewRecordManager 创建最佳成绩管理器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
//
// 加载失败不影响创建，只记录警告。
func NewRecordManager(gdataManager *gdata.Manager) *RecordManager {
	rm := &RecordManager{
		gdataManager: gdataManager,
		records:      make(map[string]BestRecord),
	}

	for _, mode := range []string{RecordModeStandard, RecordModeExtra} {
		if err := rm.load(mode); err != nil {
			log.Printf("[RecordManager] Warning: Failed to load %s record: %v", mode, err)
		}
	}
	return rm
}

func (rm *RecordManager) load(mode string) error {
	if rm.gdataManager == nil || !rm.gdataManager.ObjectPropExists(recordsObject, mode) {
		return nil
	}

	data, err := rm.gdataManager.LoadObjectProp(recordsObject, mode)
	if err != nil {
		return fmt.Errorf("failed to load record: %w", err)
	}

	var record BestRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		return fmt.Errorf("failed to unmarshal record: %w", err)
	}
	rm.records[mode] = record
	return nil
}

func (rm *RecordManager) save(mode string) error {
	if rm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(rm.records[mode])
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if err := rm.gdataManager.SaveObjectProp(recordsObject, mode, data); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

// Best 返回指定模式的最佳成绩
func (rm *RecordManager) Best(mode string) BestRecord {
	return rm.records[mode]
}

// Submit 提交一次通关成绩
//
// 返回：
//   - 更新后的最佳成绩
//   - 本次是否刷新了最短时间
//   - 保存失败时返回错误（内存中的记录已更新）
func (rm *RecordManager) Submit(mode string, elapsed float64, shots int) (BestRecord, bool, error) {
	record := rm.records[mode]
	fastest := !record.HasRecord() || elapsed < record.FastestSeconds

	if fastest {
		record.FastestSeconds = elapsed
	}
	if !record.HasRecord() || shots < record.FewestShots {
		record.FewestShots = shots
	}
	record.Runs++
	rm.records[mode] = record

	if err := rm.save(mode); err != nil {
		return record, fastest, err
	}

	log.Printf("[RecordManager] %s run #%d: %.2fs, %d shots (best %.2fs, %d shots)",
		mode, record.Runs, elapsed, shots, record.FastestSeconds, record.FewestShots)
	return record, fastest, nil
}
