// Package mocks provides test doubles for the notion client.
package mocks

import (
	"context"

	notionapi "github.com/jomei/notionapi"
	mock "github.com/stretchr/testify/mock"
)

// MockClient is a mock type for the Client interface.
type MockClient struct {
	mock.Mock
}

// QueryDatabase provides a mock function with given fields: ctx, dbID, req
func (_m *MockClient) QueryDatabase(ctx context.Context, dbID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	ret := _m.Called(ctx, dbID, req)

	if len(ret) == 0 {
		panic("no return value specified for QueryDatabase")
	}

	var r0 *notionapi.DatabaseQueryResponse
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)); ok {
		return rf(ctx, dbID, req)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string, *notionapi.DatabaseQueryRequest) *notionapi.DatabaseQueryResponse); ok {
		r0 = rf(ctx, dbID, req)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*notionapi.DatabaseQueryResponse)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string, *notionapi.DatabaseQueryRequest) error); ok {
		r1 = rf(ctx, dbID, req)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockClient creates a new instance of MockClient. It also registers a
// testing interface on the mock and a cleanup function to assert the mocks
// expectations.
func NewMockClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClient {
	m := &MockClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
