package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to TaskStatus
		want     bool
	}{
		{TaskStatusTodo, TaskStatusDone, true},
		{TaskStatusDone, TaskStatusDone, true},
		{TaskStatusCertified, TaskStatusDone, false},
		{TaskStatusDone, TaskStatusCertified, true},
		{TaskStatusTodo, TaskStatusCertified, false},
		{TaskStatusCertified, TaskStatusCertified, false},
		{TaskStatusDone, TaskStatusTodo, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestTaskStatus(t *testing.T) {
	assert.True(t, TaskStatusCertified.IsTerminal())
	assert.False(t, TaskStatusDone.IsTerminal())
	assert.False(t, TaskStatusTodo.IsTerminal())

	assert.False(t, (&Task{Status: TaskStatusTodo}).IsCompleted())
	assert.True(t, (&Task{Status: TaskStatusDone}).IsCompleted())
	assert.True(t, (&Task{Status: TaskStatusCertified}).IsCompleted())
}
