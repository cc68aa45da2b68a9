package console

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Lcyanstars/Cordle/internal/repo"
)

// endMarker terminates multi-line snippet entry.
const endMarker = "END"

func (c *Console) codePage() {
	for {
		c.clear()
		c.println("Code Repo", "List(L)", "Read(R)", "Add/Edit(A)", "Remove(M)", "Back(B)")

		op, ok := c.readOp()
		if !ok {
			return
		}
		c.clear()

		switch op {
		case 'L':
			ids := c.repo.List()
			if len(ids) == 0 {
				c.println("No codesnippets")
			}
			c.println(ids...)
			c.pause()
		case 'R':
			id, ok := c.prompt("Enter the code ID to read: ")
			if !ok {
				return
			}
			data, err := c.repo.Read(id)
			switch {
			case errors.Is(err, repo.ErrNotFound), errors.Is(err, repo.ErrInvalidID):
				c.println("Code not found")
			case err != nil:
				log.Error().Err(err).Str("id", id).Msg("read snippet")
				c.println(fmt.Sprintf("Could not read code: %v", err))
			default:
				c.println(data)
			}
			c.pause()
		case 'A':
			if !c.addSnippet() {
				return
			}
		case 'M':
			id, ok := c.prompt("Enter the code ID: ")
			if !ok {
				return
			}
			removed, err := c.repo.Remove(id)
			switch {
			case err != nil && !errors.Is(err, repo.ErrInvalidID):
				log.Error().Err(err).Str("id", id).Msg("remove snippet")
				c.println(fmt.Sprintf("Could not remove code: %v", err))
			case !removed:
				c.println("Code not found")
			default:
				c.println(fmt.Sprintf("Code #%s removed", id))
			}
			c.pause()
		case 'B':
			return
		}
	}
}

// addSnippet reads an id and lines up to endMarker, then stores them.
// It returns false when input ends before the marker.
func (c *Console) addSnippet() bool {
	id, ok := c.prompt("Enter the code ID: ")
	if !ok {
		return false
	}
	c.println(fmt.Sprintf("Enter the code, end with entering %q", endMarker))

	var lines []string
	for {
		line, ok := c.readLine()
		if !ok {
			return false
		}
		if line == endMarker {
			break
		}
		lines = append(lines, line)
	}

	switch err := c.repo.Add(id, lines); {
	case errors.Is(err, repo.ErrInvalidID):
		c.println("Invalid code ID")
	case errors.Is(err, repo.ErrNoContent):
		c.println("Code must contain at least one visible character")
	case err != nil:
		log.Error().Err(err).Str("id", id).Msg("add snippet")
		c.println(fmt.Sprintf("Could not save code: %v", err))
	default:
		c.println(fmt.Sprintf("Code #%s saved", id))
	}
	c.pause()
	return true
}
