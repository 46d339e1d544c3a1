package engine

import (
	"context"
	"sync"
	"time"

	"github.com/rushteam/newsrec/core"
)

// FeedbackWriter 异步批量写入行为事件：反馈写入不阻塞请求路径。
// 事件先进入有界缓冲，由后台协程按批/定时刷到 EventSink；
// 缓冲满时丢弃新事件（行为信号可容忍少量丢失，配额路径不行）。
type FeedbackWriter struct {
	sink core.EventSink

	buf       chan core.InteractionEvent
	batchSize int
	interval  time.Duration

	stopCh    chan struct{}
	doneCh    chan struct{}
	closeOnce sync.Once

	// 丢失统计（测试与运维可读）：dropped 是缓冲满丢弃数，
	// failed 是落库失败数。
	mu      sync.Mutex
	dropped int64
	failed  int64
}

// NewFeedbackWriter 启动后台刷写协程。bufSize<=0 取 1024，
// batchSize<=0 取 64，interval<=0 取 1s。
func NewFeedbackWriter(sink core.EventSink, bufSize, batchSize int, interval time.Duration) *FeedbackWriter {
	if bufSize <= 0 {
		bufSize = 1024
	}
	if batchSize <= 0 {
		batchSize = 64
	}
	if interval <= 0 {
		interval = time.Second
	}
	w := &FeedbackWriter{
		sink:      sink,
		buf:       make(chan core.InteractionEvent, bufSize),
		batchSize: batchSize,
		interval:  interval,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
	go w.loop()
	return w
}

// Enqueue 将事件放入缓冲，缓冲满时丢弃并计数，永不阻塞。
func (w *FeedbackWriter) Enqueue(ev core.InteractionEvent) {
	select {
	case w.buf <- ev:
	default:
		w.mu.Lock()
		w.dropped++
		w.mu.Unlock()
	}
}

// Dropped 返回累计丢弃数。
func (w *FeedbackWriter) Dropped() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dropped
}

// Failed 返回累计落库失败数。
func (w *FeedbackWriter) Failed() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.failed
}

func (w *FeedbackWriter) loop() {
	defer close(w.doneCh)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	batch := make([]core.InteractionEvent, 0, w.batchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		for _, ev := range batch {
			// 单条失败不阻断同批其余事件，但要计数
			if err := w.sink.Append(ctx, ev); err != nil {
				w.mu.Lock()
				w.failed++
				w.mu.Unlock()
			}
		}
		cancel()
		batch = batch[:0]
	}

	for {
		select {
		case ev := <-w.buf:
			batch = append(batch, ev)
			if len(batch) >= w.batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-w.stopCh:
			// 排空缓冲后退出
			for {
				select {
				case ev := <-w.buf:
					batch = append(batch, ev)
				default:
					flush()
					return
				}
			}
		}
	}
}

// Close 停止后台协程并刷出剩余事件。
func (w *FeedbackWriter) Close() error {
	w.closeOnce.Do(func() {
		close(w.stopCh)
		<-w.doneCh
	})
	return nil
}
