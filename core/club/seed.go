package club

import "time"

// DefaultClubs returns the clubs seeded on first-ever initialization.
func DefaultClubs(now time.Time) []Club {
	return []Club{
		{Name: "코딩", Icon: "💻", Description: "프로그래밍과 컴퓨터 과학을 배우는 동아리", President: "president1", MaxMembers: 20, CreatedAt: now},
		{Name: "댄스", Icon: "💃", Description: "다양한 춤을 배우고 공연하는 동아리", President: "president1", MaxMembers: 15, CreatedAt: now},
		{Name: "만들기", Icon: "🔨", Description: "손으로 만드는 모든 것을 탐구하는 동아리", President: "president1", MaxMembers: 12, CreatedAt: now},
		{Name: "미스테리탐구", Icon: "🔍", Description: "신비한 현상과 미스터리를 탐구하는 동아리", President: "president1", MaxMembers: 10, CreatedAt: now},
		{Name: "줄넘기", Icon: "🪢", Description: "줄넘기 기술을 연마하고 체력을 기르는 동아리", President: "president1", MaxMembers: 25, CreatedAt: now},
		{Name: "풍선아트", Icon: "🎈", Description: "풍선으로 다양한 작품을 만드는 동아리", President: "president1", MaxMembers: 15, CreatedAt: now},
	}
}

// DefaultMemberships returns the membership links seeded alongside the
// default clubs.
func DefaultMemberships(now time.Time) []Membership {
	return []Membership{
		{Username: "president1", ClubName: "코딩", JoinedAt: now},
		{Username: "president1", ClubName: "댄스", JoinedAt: now},
		{Username: "vicepresident1", ClubName: "코딩", JoinedAt: now},
		{Username: "treasurer1", ClubName: "만들기", JoinedAt: now},
		{Username: "recorder1", ClubName: "미스테리탐구", JoinedAt: now},
		{Username: "designer1", ClubName: "풍선아트", JoinedAt: now},
		{Username: "member1", ClubName: "코딩", JoinedAt: now},
		{Username: "member1", ClubName: "줄넘기", JoinedAt: now},
		{Username: "member2", ClubName: "댄스", JoinedAt: now},
		{Username: "member2", ClubName: "풍선아트", JoinedAt: now},
	}
}
