package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"todo", StatusTodo},
		{"TODO", StatusTodo},
		{"  To-Do  ", StatusTodo},
		{"backlog", StatusTodo},
		{"Bekliyor", StatusTodo},
		{"yapılacak", StatusTodo},

		{"doing", StatusDoing},
		{"In Progress", StatusDoing},
		{"WIP", StatusDoing},
		{"yapılıyor", StatusDoing},

		{"done", StatusDone},
		{"Completed", StatusDone},
		{"Tamamlandı", StatusDone},
		{"bitti", StatusDone},

		{"", StatusTodo},
		{"garbage", StatusTodo},
		{"???", StatusTodo},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, NormalizeStatus(c.raw), "NormalizeStatus(%q)", c.raw)
	}
}

func TestTaskNormalizedStatus(t *testing.T) {
	task := NewTask("write report")
	assert.Equal(t, StatusTodo, task.NormalizedStatus(), "nil status defaults to todo")

	doing := "In Progress"
	task.Status = &doing
	assert.Equal(t, StatusDoing, task.NormalizedStatus())
}
