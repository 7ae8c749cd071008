package gradeapitest_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/okian/gradebook/internal/gradeapitest"
	. "github.com/smartystreets/goconvey/convey"
)

type reply struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

func call(t *testing.T, base, method, path, token, body string) (int, reply) {
	t.Helper()
	req, err := http.NewRequest(method, base+path, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("token", token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var r reply
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, r
}

func TestServerTeams(t *testing.T) {
	Convey("Given a fake service with two users", t, func() {
		fake := gradeapitest.New()
		fake.AddUser("tok-a", "alice")
		fake.AddUser("tok-b", "bob")
		srv := fake.Start()
		defer srv.Close()

		Convey("When alice forms a team and bob joins it", func() {
			_, formed := call(t, srv.URL, http.MethodPost, "/team", "tok-a", `{"name":"owls"}`)
			_, joined := call(t, srv.URL, http.MethodPut, "/team", "tok-b", `{"name":"owls"}`)

			Convey("Then both are members in join order", func() {
				So(formed.StatusCode, ShouldEqual, 200)
				So(joined.StatusCode, ShouldEqual, 200)
				members, ok := fake.Team("owls")
				So(ok, ShouldBeTrue)
				So(members, ShouldResemble, []string{"alice", "bob"})
			})

			Convey("And forming the same team again is rejected", func() {
				_, again := call(t, srv.URL, http.MethodPost, "/team", "tok-b", `{"name":"owls"}`)
				So(again.StatusCode, ShouldEqual, 400)
				So(again.Message, ShouldEqual, gradeapitest.MsgTeamExists)
			})

			Convey("And when both leave the team is removed", func() {
				call(t, srv.URL, http.MethodPut, "/leaveTeam", "tok-a", `{}`)
				call(t, srv.URL, http.MethodPut, "/leaveTeam", "tok-b", `{}`)
				_, ok := fake.Team("owls")
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When an unknown token is used", func() {
			status, r := call(t, srv.URL, http.MethodGet, "/team", "nope", "")

			Convey("Then the request is rejected", func() {
				So(status, ShouldEqual, http.StatusUnauthorized)
				So(r.Message, ShouldEqual, gradeapitest.MsgInvalidToken)
			})
		})

		Convey("When logging a grade", func() {
			_, r := call(t, srv.URL, http.MethodPost, "/grade", "tok-a", `{"course":"csc207","grade":91}`)

			Convey("Then it is stored for the token owner", func() {
				So(r.StatusCode, ShouldEqual, 200)
				g, ok := fake.Grade("alice", "csc207")
				So(ok, ShouldBeTrue)
				So(g, ShouldEqual, 91)
			})

			Convey("And the request is recorded", func() {
				reqs := fake.Requests()
				So(len(reqs), ShouldEqual, 1)
				So(reqs[0].Token, ShouldEqual, "tok-a")
				So(reqs[0].Body, ShouldContainSubstring, "csc207")
			})
		})
	})
}
