package jobs

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/straye-as/kontragent-api/internal/domain"
	"go.uber.org/zap"
)

// ActivityDigestJobName is the name of the activity digest job
const ActivityDigestJobName = "activity_digest"

// ActivityCounter counts activity log entries per action tag.
// Satisfied by repository.ActivityLogRepository.
type ActivityCounter interface {
	CountByAction(ctx context.Context, start, end time.Time) (map[domain.ActionTag]int64, error)
}

// ActivityDigest summarizes the activity log over a window
type ActivityDigest struct {
	Start    time.Time
	End      time.Time
	Total    int64
	Failures int64
	ByAction map[domain.ActionTag]int64
}

// ActivityDigestJob logs how many audit entries each action produced over the last window
type ActivityDigestJob struct {
	counter ActivityCounter
	logger  *zap.Logger
	window  time.Duration
	timeout time.Duration
	now     func() time.Time
}

// NewActivityDigestJob creates a new activity digest job
func NewActivityDigestJob(counter ActivityCounter, logger *zap.Logger, window time.Duration) *ActivityDigestJob {
	return &ActivityDigestJob{
		counter: counter,
		logger:  logger,
		window:  window,
		timeout: time.Minute,
		now:     time.Now,
	}
}

// Run is called by the scheduler
func (j *ActivityDigestJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	digest, err := j.Digest(ctx)
	if err != nil {
		j.logger.Error("activity digest failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	fields := []zap.Field{
		zap.Time("window_start", digest.Start),
		zap.Time("window_end", digest.End),
		zap.Int64("total", digest.Total),
		zap.Int64("failures", digest.Failures),
		zap.Duration("duration", time.Since(start)),
	}
	for _, tag := range sortedTags(digest.ByAction) {
		fields = append(fields, zap.Int64(string(tag), digest.ByAction[tag]))
	}
	j.logger.Info("activity digest", fields...)
}

// Digest counts the entries of the window ending now
func (j *ActivityDigestJob) Digest(ctx context.Context) (ActivityDigest, error) {
	end := j.now().UTC()
	digest := ActivityDigest{Start: end.Add(-j.window), End: end}

	counts, err := j.counter.CountByAction(ctx, digest.Start, digest.End)
	if err != nil {
		return digest, err
	}

	digest.ByAction = counts
	for tag, n := range counts {
		digest.Total += n
		if IsFailureTag(tag) {
			digest.Failures += n
		}
	}
	return digest, nil
}

// IsFailureTag reports whether an action tag records a failed operation
func IsFailureTag(tag domain.ActionTag) bool {
	s := string(tag)
	return strings.Contains(s, "FAILED") || strings.HasSuffix(s, "DB_ERROR")
}

func sortedTags(counts map[domain.ActionTag]int64) []domain.ActionTag {
	tags := make([]domain.ActionTag, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, k int) bool { return tags[i] < tags[k] })
	return tags
}
