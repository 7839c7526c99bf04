package metrics

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
)

// ServerMetrics содержит метрики процесса сервера
type ServerMetrics struct {
	StartTime time.Time
	proc      *process.Process
}

// NewServerMetrics создает новый экземпляр метрик
func NewServerMetrics() *ServerMetrics {
	sm := &ServerMetrics{StartTime: time.Now()}
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		sm.proc = proc
	}
	return sm
}

// GetUptime возвращает время работы сервера
func (sm *ServerMetrics) GetUptime() string {
	return FormatUptime(time.Since(sm.StartTime))
}

// FormatUptime форматирует длительность как «1д 2ч 3м 4с»
func FormatUptime(uptime time.Duration) string {
	days := int(uptime.Hours()) / 24
	hours := int(uptime.Hours()) % 24
	minutes := int(uptime.Minutes()) % 60
	seconds := int(uptime.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dд %dч %dм %dс", days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%dч %dм %dс", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dм %dс", minutes, seconds)
	default:
		return fmt.Sprintf("%dс", seconds)
	}
}

// GetCPUUsage возвращает использование CPU процессом в процентах
func (sm *ServerMetrics) GetCPUUsage() (float64, error) {
	if sm.proc != nil {
		if pct, err := sm.proc.CPUPercent(); err == nil {
			return pct, nil
		}
	}

	// Если не удалось получить метрику процесса, берём системную
	cpuPercents, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		return 0, err
	}
	if len(cpuPercents) == 0 {
		return 0, fmt.Errorf("cpu: нет данных")
	}
	return cpuPercents[0], nil
}

// GetRSS возвращает резидентную память процесса в MB
func (sm *ServerMetrics) GetRSS() (float64, error) {
	if sm.proc == nil {
		return 0, fmt.Errorf("process: недоступен")
	}
	mem, err := sm.proc.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return float64(mem.RSS) / 1024 / 1024, nil
}

// GetDetailedMemoryStats возвращает статистику памяти рантайма
func (sm *ServerMetrics) GetDetailedMemoryStats() map[string]interface{} {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return map[string]interface{}{
		"alloc_mb":      float64(m.Alloc) / 1024 / 1024,
		"sys_mb":        float64(m.Sys) / 1024 / 1024,
		"heap_alloc_mb": float64(m.HeapAlloc) / 1024 / 1024,
		"num_gc":        m.NumGC,
		"goroutines":    runtime.NumGoroutine(),
	}
}

// ProcessCollector отдаёт CPU и RSS процесса в Prometheus при каждом сборе
type ProcessCollector struct {
	sm      *ServerMetrics
	cpuDesc *prometheus.Desc
	rssDesc *prometheus.Desc
	upDesc  *prometheus.Desc
}

// NewProcessCollector создаёт коллектор поверх ServerMetrics
func NewProcessCollector(sm *ServerMetrics) *ProcessCollector {
	return &ProcessCollector{
		sm:      sm,
		cpuDesc: prometheus.NewDesc("skyblob_process_cpu_percent", "CPU процесса, %.", nil, nil),
		rssDesc: prometheus.NewDesc("skyblob_process_rss_megabytes", "Резидентная память процесса.", nil, nil),
		upDesc:  prometheus.NewDesc("skyblob_process_uptime_seconds", "Время работы процесса.", nil, nil),
	}
}

// Describe implements prometheus.Collector
func (pc *ProcessCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- pc.cpuDesc
	ch <- pc.rssDesc
	ch <- pc.upDesc
}

// Collect implements prometheus.Collector. Недоступные показатели пропускаются.
func (pc *ProcessCollector) Collect(ch chan<- prometheus.Metric) {
	if v, err := pc.sm.GetCPUUsage(); err == nil {
		ch <- prometheus.MustNewConstMetric(pc.cpuDesc, prometheus.GaugeValue, v)
	}
	if v, err := pc.sm.GetRSS(); err == nil {
		ch <- prometheus.MustNewConstMetric(pc.rssDesc, prometheus.GaugeValue, v)
	}
	ch <- prometheus.MustNewConstMetric(pc.upDesc, prometheus.GaugeValue, time.Since(pc.sm.StartTime).Seconds())
}
