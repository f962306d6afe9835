package mock

import (
	"sort"

	foodfellas "github.com/eliasantony/food-fellas"
)

type UserStore struct {
	db  map[string]*foodfellas.User
	seq int64

	followers    map[string][]string
	following    map[string][]string
	interactions map[string][]string
	collections  map[string][]string
	recs         map[string][]*foodfellas.Recommendation
}

func (s *UserStore) init() {
	if s.db == nil {
		s.db = make(map[string]*foodfellas.User)
		s.followers = make(map[string][]string)
		s.following = make(map[string][]string)
		s.interactions = make(map[string][]string)
		s.collections = make(map[string][]string)
		s.recs = make(map[string][]*foodfellas.Recommendation)
	}
}

func (s *UserStore) Get(id string) (*foodfellas.User, error) {
	s.init()
	user, ok := s.db[id]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (s *UserStore) Upsert(user *foodfellas.User) error {
	s.init()
	if existing, ok := s.db[user.ID]; ok {
		user.CreatedTime = existing.CreatedTime
	} else if user.CreatedTime == 0 {
		s.seq++
		user.CreatedTime = s.seq
	}

	clone := *user
	s.db[user.ID] = &clone
	return nil
}

func (s *UserStore) Merge(id string, fn func(*foodfellas.User)) error {
	s.init()
	user, ok := s.db[id]
	if !ok {
		user = &foodfellas.User{ID: id}
		s.seq++
		user.CreatedTime = s.seq
		s.db[id] = user
	}
	fn(user)
	return nil
}

func (s *UserStore) Delete(id string) error {
	s.init()
	delete(s.db, id)
	delete(s.followers, id)
	delete(s.following, id)
	delete(s.interactions, id)
	delete(s.collections, id)
	delete(s.recs, id)
	return nil
}

func (s *UserStore) List(after foodfellas.Cursor, limit int) ([]*foodfellas.User, foodfellas.Cursor, error) {
	s.init()
	all := make([]*foodfellas.User, 0, len(s.db))
	for _, user := range s.db {
		all = append(all, user)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedTime != all[j].CreatedTime {
			return all[i].CreatedTime < all[j].CreatedTime
		}
		return all[i].ID < all[j].ID
	})

	page := make([]*foodfellas.User, 0, limit)
	next := after
	for _, user := range all {
		if user.CreatedTime < after.CreatedAt ||
			(user.CreatedTime == after.CreatedAt && user.ID <= after.ID) {
			continue
		}
		clone := *user
		page = append(page, &clone)
		next = foodfellas.Cursor{CreatedAt: user.CreatedTime, ID: user.ID}
		if len(page) == limit {
			break
		}
	}
	return page, next, nil
}

func (s *UserStore) Follow(userID, followerID string) error {
	s.init()
	s.followers[userID] = appendUnique(s.followers[userID], followerID)
	s.following[followerID] = appendUnique(s.following[followerID], userID)
	return nil
}

func (s *UserStore) Followers(userID string) ([]string, error) {
	s.init()
	return append([]string{}, s.followers[userID]...), nil
}

func (s *UserStore) Following(userID string) ([]string, error) {
	s.init()
	return append([]string{}, s.following[userID]...), nil
}

func (s *UserStore) AddInteraction(userID, recipeID string) error {
	s.init()
	s.interactions[userID] = appendUnique(s.interactions[userID], recipeID)
	return nil
}

func (s *UserStore) Interactions(userID string) ([]string, error) {
	s.init()
	return append([]string{}, s.interactions[userID]...), nil
}

func (s *UserStore) SaveToCollection(userID, recipeID string) error {
	s.init()
	s.collections[userID] = appendUnique(s.collections[userID], recipeID)
	return nil
}

func (s *UserStore) CollectionRecipes(userID string) ([]string, error) {
	s.init()
	return append([]string{}, s.collections[userID]...), nil
}

func (s *UserStore) ReplaceRecommendations(userID string, recs []*foodfellas.Recommendation) error {
	s.init()
	s.recs[userID] = recs
	return nil
}

func (s *UserStore) Recommendations(userID string) ([]*foodfellas.Recommendation, error) {
	s.init()
	return append([]*foodfellas.Recommendation{}, s.recs[userID]...), nil
}

func appendUnique(list []string, v string) []string {
	for _, item := range list {
		if item == v {
			return list
		}
	}
	return append(list, v)
}
