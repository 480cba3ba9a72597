package objects

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Person identifies an author or committer: "<name> <<email>> <seconds> <±HHMM>".
type Person struct {
	Name  string
	Email string
	When  time.Time
}

// String renders the person in the exact wire format commits embed.
func (p Person) String() string {
	_, offset := p.When.Zone()
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	hh := offset / 3600
	mm := (offset % 3600) / 60
	return fmt.Sprintf("%s <%s> %d %c%02d%02d", p.Name, p.Email, p.When.Unix(), sign, hh, mm)
}

// ParsePerson parses the "<name> <<email>> <seconds> <±HHMM>" line.
func ParsePerson(s string) (Person, error) {
	open := strings.LastIndex(s, "<")
	shut := strings.LastIndex(s, ">")
	if open == -1 || shut == -1 || shut < open {
		return Person{}, fmt.Errorf("malformed person line: %q", s)
	}

	name := strings.TrimSpace(s[:open])
	email := s[open+1 : shut]

	rest := strings.TrimSpace(s[shut+1:])
	fields := strings.Fields(rest)
	if len(fields) != 2 {
		return Person{}, fmt.Errorf("malformed person timestamp: %q", s)
	}

	seconds, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return Person{}, fmt.Errorf("malformed person timestamp seconds: %w", err)
	}

	loc, err := parseZoneOffset(fields[1])
	if err != nil {
		return Person{}, err
	}

	return Person{
		Name:  name,
		Email: email,
		When:  time.Unix(seconds, 0).In(loc),
	}, nil
}

func parseZoneOffset(tz string) (*time.Location, error) {
	if len(tz) != 5 || (tz[0] != '+' && tz[0] != '-') {
		return nil, fmt.Errorf("malformed timezone offset: %q", tz)
	}
	hh, err := strconv.Atoi(tz[1:3])
	if err != nil {
		return nil, fmt.Errorf("malformed timezone offset: %w", err)
	}
	mm, err := strconv.Atoi(tz[3:5])
	if err != nil {
		return nil, fmt.Errorf("malformed timezone offset: %w", err)
	}
	seconds := hh*3600 + mm*60
	if tz[0] == '-' {
		seconds = -seconds
	}
	return time.FixedZone(tz, seconds), nil
}
