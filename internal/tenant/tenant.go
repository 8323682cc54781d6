// Package tenant holds the per-deployment configuration that used to live in
// duplicated code paths. Each national deployment gets one Config entry;
// learner records are keyed by (tenant, email) everywhere else.
package tenant

// DefaultPassThreshold is the canonical minimum quiz score, inclusive.
const DefaultPassThreshold = 7

// Config describes one national deployment. Everything tenant-specific lives
// here: video URLs, course title on the certificate, questionnaire labels and
// the quiz pass threshold.
type Config struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	CourseTitle    string            `json:"course_title"`
	PassThreshold  int               `json:"pass_threshold"`
	VideoURLs      [2]string         `json:"video_urls"`
	QuestionLabels map[string]string `json:"question_labels"`
}
