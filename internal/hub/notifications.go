package hub

// MarkNotificationRead marks one notification as read. Unknown IDs are ignored.
func (s *Store) MarkNotificationRead(id int64) {
	s.mutate("MarkNotificationRead", func() []Change {
		for i := range s.notifications {
			if s.notifications[i].ID != id {
				continue
			}
			if s.notifications[i].Read {
				return nil
			}
			s.notifications[i].Read = true
			return []Change{{Collection: CollectionNotifications, IDs: []int64{id}}}
		}
		return nil
	})
}

// MarkAllNotificationsRead marks every notification as read.
func (s *Store) MarkAllNotificationsRead() {
	s.mutate("MarkAllNotificationsRead", func() []Change {
		for i := range s.notifications {
			s.notifications[i].Read = true
		}
		return []Change{{Collection: CollectionNotifications}}
	})
}
