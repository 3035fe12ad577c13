package compose

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/goccy/go-yaml"
)

// TopicMap maps an issue label to the topic documents that should be
// included whole when composing context for an issue carrying it.
//
//	bug: [debugging, testing]
//	api: [api/standards]
type TopicMap map[string][]string

// LoadTopicMap reads a TopicMap from name in fsys. A missing file is an
// empty map.
func LoadTopicMap(fsys fs.FS, name string) (TopicMap, error) {
	d, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return TopicMap{}, nil
		}
		return nil, err
	}
	m := TopicMap{}
	if err := yaml.Unmarshal(d, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return m, nil
}

// TopicsForLabels returns the topics mapped from labels, in label order,
// each once.
func TopicsForLabels(labels []string, m TopicMap) []string {
	seen := map[string]bool{}
	var res []string
	for _, l := range labels {
		for _, topic := range m[l] {
			if seen[topic] {
				continue
			}
			seen[topic] = true
			res = append(res, topic)
		}
	}
	return res
}

// MergeTopics appends the topics of more not already in topics.
func MergeTopics(topics []string, more ...string) []string {
	seen := map[string]bool{}
	for _, t := range topics {
		seen[t] = true
	}
	for _, t := range more {
		if !seen[t] {
			seen[t] = true
			topics = append(topics, t)
		}
	}
	return topics
}
