// Package inspect renders container contents as text tables for debugging.
package inspect

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/i5heu/GoRingKit/pkg/priorityqueue"
	"github.com/i5heu/GoRingKit/pkg/queue"
	"github.com/i5heu/GoRingKit/pkg/stack"
)

var headerStyle = lipgloss.NewStyle().Bold(true)

// Table renders rows under headers with a plain box border.
func Table(headers []string, rows [][]string) string {
	styled := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = headerStyle.Render(h)
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(styled...).
		Rows(rows...).
		String()
}

// Stack lists a stack from the top down.
func Stack[T any](s *stack.Stack[T]) string {
	var rows [][]string
	_ = s.Each(func(i uint64, v T) error {
		rows = append(rows, []string{strconv.FormatUint(i, 10), fmt.Sprint(v)})
		return nil
	})
	return Table([]string{"INDEX", "VALUE"}, rows)
}

// Queue lists a queue from head to tail.
func Queue[T any](q *queue.Queue[T]) string {
	var rows [][]string
	_ = q.Each(func(i uint64, v T) error {
		rows = append(rows, []string{strconv.FormatUint(i, 10), fmt.Sprint(v)})
		return nil
	})
	return Table([]string{"INDEX", "VALUE"}, rows)
}

// PriorityQueue lists a priority queue in pop order.
func PriorityQueue[T any](pq *priorityqueue.PriorityQueue[T]) string {
	var rows [][]string
	_ = pq.Each(func(i uint64, v T, p int) error {
		rows = append(rows, []string{strconv.FormatUint(i, 10), strconv.Itoa(p), fmt.Sprint(v)})
		return nil
	})
	return Table([]string{"INDEX", "PRIORITY", "VALUE"}, rows)
}
