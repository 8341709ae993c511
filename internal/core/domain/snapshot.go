package domain

// Snapshot is the whole document: every user and every task.
type Snapshot struct {
	Users []User `json:"users"`
	Tasks []Task `json:"tasks"`
}

// NewSnapshot returns the empty default document.
func NewSnapshot() *Snapshot {
	return &Snapshot{Users: []User{}, Tasks: []Task{}}
}

// FindUser returns the index of the user with id, or -1.
func (s *Snapshot) FindUser(id string) int {
	for i := range s.Users {
		if s.Users[i].ID == id {
			return i
		}
	}
	return -1
}

// FindUserByEmail returns the index of the user with email, or -1.
func (s *Snapshot) FindUserByEmail(email string) int {
	for i := range s.Users {
		if s.Users[i].Email == email {
			return i
		}
	}
	return -1
}

// FindOwnedTask returns the index of the task with id owned by userID, or -1.
func (s *Snapshot) FindOwnedTask(userID, id string) int {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id && s.Tasks[i].UserID == userID {
			return i
		}
	}
	return -1
}

// FindOwnedSubtask scans every task owned by userID for the subtask id and
// returns the parent task index and subtask index, or -1, -1.
func (s *Snapshot) FindOwnedSubtask(userID, subtaskID string) (int, int) {
	for i := range s.Tasks {
		if s.Tasks[i].UserID != userID {
			continue
		}
		for j := range s.Tasks[i].Subtasks {
			if s.Tasks[i].Subtasks[j].ID == subtaskID {
				return i, j
			}
		}
	}
	return -1, -1
}
