// file: services/submission_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CFOCup/models"
)

func TestGroupDuplicates(t *testing.T) {
	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	subs := []models.Submission{
		{ID: 1, TeamID: 1, FileHash: "aaa", FileName: "report.pdf", SubmittedAt: at},
		{ID: 2, TeamID: 2, FileHash: "bbb", FileName: "model.xlsx", SubmittedAt: at},
		{ID: 3, TeamID: 3, FileHash: "aaa", FileName: "final.pdf", SubmittedAt: at.Add(time.Minute)},
	}

	groups := GroupDuplicates(subs)
	require.Len(t, groups, 1)
	assert.Equal(t, "aaa", groups[0].FileHash)
	require.Len(t, groups[0].Submissions, 2)
	assert.Equal(t, uint32(1), groups[0].Submissions[0].TeamID)
	assert.Equal(t, uint32(3), groups[0].Submissions[1].TeamID)
}

func TestGroupDuplicates_NoDuplicates(t *testing.T) {
	subs := []models.Submission{
		{ID: 1, TeamID: 1, FileHash: "aaa"},
		{ID: 2, TeamID: 2, FileHash: "bbb"},
	}

	assert.Empty(t, GroupDuplicates(subs))
}

func TestGroupDuplicates_IgnoresEmptyHash(t *testing.T) {
	subs := []models.Submission{
		{ID: 1, TeamID: 1, FileHash: ""},
		{ID: 2, TeamID: 2, FileHash: ""},
	}

	assert.Empty(t, GroupDuplicates(subs))
}

func TestGroupDuplicates_PreservesFirstSeenOrder(t *testing.T) {
	subs := []models.Submission{
		{ID: 1, TeamID: 1, FileHash: "zzz"},
		{ID: 2, TeamID: 2, FileHash: "aaa"},
		{ID: 3, TeamID: 3, FileHash: "zzz"},
		{ID: 4, TeamID: 4, FileHash: "aaa"},
	}

	groups := GroupDuplicates(subs)
	require.Len(t, groups, 2)
	assert.Equal(t, "zzz", groups[0].FileHash)
	assert.Equal(t, "aaa", groups[1].FileHash)
}

func TestTaskAllowedTypeList(t *testing.T) {
	task := models.Task{AllowedFileTypes: "PDF, xlsx ,docx"}
	assert.Equal(t, []string{"pdf", "xlsx", "docx"}, task.AllowedTypeList())
}

func TestTaskMaxFileSizeBytes(t *testing.T) {
	task := models.Task{MaxFileSizeMB: 50}
	assert.Equal(t, uint64(50*1024*1024), task.MaxFileSizeBytes())
}
